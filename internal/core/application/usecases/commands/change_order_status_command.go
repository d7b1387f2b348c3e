package commands

import (
	"errors"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a party's request to move an order to
// a new lifecycle status. The requester is the authenticated principal; its
// role on the order is resolved by the aggregate, never trusted from input.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderNumber, sellerID, order.Processing)
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	requesterID kernel.UserID
	target      order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status.
// The order number, requester, and target status must all be valid; whether
// the requester may perform the change is decided against the loaded order.
func NewChangeOrderStatusCommand(
	orderNumber kernel.OrderNumber,
	requesterID kernel.UserID,
	target order.Status,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setRequesterID(requesterID),
		cmd.setTarget(target),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderNumber returns the order to change.
func (c ChangeOrderStatusCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// RequesterID returns the authenticated principal requesting the change.
func (c ChangeOrderStatusCommand) RequesterID() kernel.UserID {
	return c.requesterID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *ChangeOrderStatusCommand) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *ChangeOrderStatusCommand) setRequesterID(requesterID kernel.UserID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
