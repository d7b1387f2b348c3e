package ports

import (
	"context"

	"resale/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// records. Records are written once per event; there is no update or delete.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, n *notification.Notification) error
}
