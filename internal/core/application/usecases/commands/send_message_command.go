package commands

import (
	"errors"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"
	"resale/internal/pkg/guard"
)

var ErrSendMessageCommandIsNotConstructed = errors.New(
	"SendMessageCommand must be created via NewSendMessageCommand constructor",
)

// SendMessageCommand represents a party's request to post a message into an
// order's conversation. The sender is the authenticated principal; the
// receiver is declared by the client and re-validated against the order's
// party set before anything is stored.
//
// Example:
//
//	cmd, err := NewSendMessageCommand(orderNumber, buyerID, sellerID,
//	    "are the seats together?")
//	if err != nil {
//	    return fmt.Errorf("invalid message: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type SendMessageCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	senderID    kernel.UserID
	receiverID  kernel.UserID
	body        string

	guard guard.ConstructorGuard
}

// NewSendMessageCommand creates a command to post a chat message. The body
// must be non-empty and sender and receiver must be different users.
func NewSendMessageCommand(
	orderNumber kernel.OrderNumber,
	senderID kernel.UserID,
	receiverID kernel.UserID,
	body string,
) (SendMessageCommand, error) {
	cmd := SendMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setSenderID(senderID),
		cmd.setReceiverID(receiverID),
		cmd.setBody(body),
	); err != nil {
		return SendMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSendMessageCommandIsNotConstructed if validation fails.
func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

// OrderNumber returns the conversation's order.
func (c SendMessageCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// SenderID returns the authenticated author of the message.
func (c SendMessageCommand) SenderID() kernel.UserID {
	return c.senderID
}

// ReceiverID returns the declared addressee of the message.
func (c SendMessageCommand) ReceiverID() kernel.UserID {
	return c.receiverID
}

// Body returns the message text.
func (c SendMessageCommand) Body() string {
	return c.body
}

func (c *SendMessageCommand) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *SendMessageCommand) setSenderID(senderID kernel.UserID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}

	c.senderID = senderID
	return nil
}

func (c *SendMessageCommand) setReceiverID(receiverID kernel.UserID) error {
	if err := receiverID.Validate(); err != nil {
		return err
	}

	c.receiverID = receiverID
	return nil
}

func (c *SendMessageCommand) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}

	c.body = body
	return nil
}
