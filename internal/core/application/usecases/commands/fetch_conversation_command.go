package commands

import (
	"errors"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/guard"
)

var ErrFetchConversationCommandIsNotConstructed = errors.New(
	"FetchConversationCommand must be created via NewFetchConversationCommand constructor",
)

// FetchConversationCommand represents a party's request to read an order's
// conversation. It lives with the commands because fetching has a side
// effect: the caller's unread messages are marked read in the same
// transaction that reads them.
type FetchConversationCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	requesterID kernel.UserID

	guard guard.ConstructorGuard
}

// NewFetchConversationCommand creates a command to fetch a conversation.
func NewFetchConversationCommand(
	orderNumber kernel.OrderNumber,
	requesterID kernel.UserID,
) (FetchConversationCommand, error) {
	cmd := FetchConversationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setRequesterID(requesterID),
	); err != nil {
		return FetchConversationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFetchConversationCommandIsNotConstructed if validation fails.
func (c FetchConversationCommand) Validate() error {
	return c.guard.Validate(ErrFetchConversationCommandIsNotConstructed)
}

// OrderNumber returns the conversation's order.
func (c FetchConversationCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// RequesterID returns the authenticated principal reading the conversation.
func (c FetchConversationCommand) RequesterID() kernel.UserID {
	return c.requesterID
}

func (c *FetchConversationCommand) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *FetchConversationCommand) setRequesterID(requesterID kernel.UserID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}
