package commands

import (
	"context"
	"fmt"

	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"
	"resale/internal/pkg/monitoring"
)

// FetchConversationCommandHandler returns an order's full conversation,
// oldest first, and marks the requester's unread messages as read in the
// same transaction.
//
// Polling clients call this repeatedly; marking read is idempotent, so
// concurrent fetches by the same party are harmless. Messages the requester
// sent keep their read flag untouched: only the addressed receiver's fetch
// flips it.
type FetchConversationCommandHandler struct {
	uowFactory ChatUoWFactory
}

// NewFetchConversationCommandHandler creates a handler for conversation
// reads. Requires a ChatUoWFactory so the read and the read-marking commit
// together.
func NewFetchConversationCommandHandler(uowFactory ChatUoWFactory) FetchConversationCommandHandler {
	return FetchConversationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the fetch command. The requester must be a party to the
// order; outsiders get access denied and learn nothing about the
// conversation, not even whether it exists.
func (h *FetchConversationCommandHandler) Handle(ctx context.Context, cmd FetchConversationCommand) ([]*chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	if !aggregate.IsParty(cmd.RequesterID()) {
		monitoring.RecordRejection(monitoring.ReasonForbidden)
		return nil, errs.NewAccessDeniedError(
			fmt.Sprintf("user %s is not a party to order %s",
				cmd.RequesterID().String(), cmd.OrderNumber().String()))
	}

	messageRepo := uow.MessageRepository()

	messages, err := messageRepo.GetAllByOrder(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	var unreadIDs []kernel.UUID
	for _, message := range messages {
		if message.IsAddressedTo(cmd.RequesterID()) && !message.IsRead() {
			message.MarkRead()
			unreadIDs = append(unreadIDs, message.ID())
		}
	}

	if len(unreadIDs) > 0 {
		if err = messageRepo.MarkRead(ctx, unreadIDs); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return messages, nil
}
