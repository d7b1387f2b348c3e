package commands

import (
	"context"
	"fmt"

	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"
	"resale/internal/pkg/monitoring"
)

// SendMessageResult reports the outcome of a send message command.
type SendMessageResult struct {
	// MessageID identifies the stored message.
	MessageID kernel.UUID

	// Degraded is true when the message was stored but the receiver's
	// notification could not be fully delivered.
	Degraded bool
}

// SendMessageCommandHandler handles the business logic for posting a chat
// message into an order's conversation.
//
// Access control is inherited from the order: the sender must be a party,
// and the declared receiver must also be a party. A legitimate sender
// naming an outside receiver is rejected, so conversations never leak
// beyond the order's two parties.
type SendMessageCommandHandler struct {
	uowFactory ChatUoWFactory
	notifier   Notifier
}

// NewSendMessageCommandHandler creates a handler for message posting.
// Requires a ChatUoWFactory for transactional persistence and a Notifier for
// the post-commit receiver notification.
func NewSendMessageCommandHandler(uowFactory ChatUoWFactory, notifier Notifier) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the send message command. The message write commits
// first; the receiver's notification is emitted afterwards and its failure
// only degrades the result.
func (h *SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (SendMessageResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendMessageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SendMessageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return SendMessageResult{}, err
	}

	if !aggregate.IsParty(cmd.SenderID()) {
		monitoring.RecordRejection(monitoring.ReasonForbidden)
		return SendMessageResult{}, errs.NewAccessDeniedError(
			fmt.Sprintf("user %s is not a party to order %s",
				cmd.SenderID().String(), cmd.OrderNumber().String()))
	}

	// Naming an outside receiver is a malformed request, not a permission
	// problem: the sender is legitimate but the declared addressee is wrong.
	if !aggregate.IsParty(cmd.ReceiverID()) {
		return SendMessageResult{}, errs.NewValueIsInvalidErrorWithCause("receiverId",
			fmt.Errorf("receiver %s is not a party to order %s",
				cmd.ReceiverID().String(), cmd.OrderNumber().String()))
	}

	message, err := chat.NewMessage(kernel.NewUUID(), cmd.OrderNumber(),
		cmd.SenderID(), cmd.ReceiverID(), cmd.Body())
	if err != nil {
		return SendMessageResult{}, err
	}

	if err = uow.MessageRepository().Add(ctx, message); err != nil {
		return SendMessageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SendMessageResult{}, err
	}

	monitoring.RecordMessageSent()

	delivered := h.notifier.NotifyNewMessage(ctx, aggregate, message)

	return SendMessageResult{
		MessageID: message.ID(),
		Degraded:  !delivered,
	}, nil
}
