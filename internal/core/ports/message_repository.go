package ports

import (
	"context"

	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"
)

// MessageRepository defines the persistence contract for chat messages.
// Messages are immutable except for their read flag.
type MessageRepository interface {
	// Add persists a new message.
	Add(ctx context.Context, message *chat.Message) error

	// GetAllByOrder retrieves an order's full conversation, oldest first.
	// An order with no messages yields an empty slice, not an error.
	GetAllByOrder(ctx context.Context, orderNumber kernel.OrderNumber) ([]*chat.Message, error)

	// MarkRead flips the read flag on the given messages. Already-read
	// messages are unaffected, so repeated fetches are idempotent.
	MarkRead(ctx context.Context, ids []kernel.UUID) error
}
