package ports

import (
	"context"

	"resale/internal/core/domain/model/notification"
)

// NotificationPublisher pushes a notification to the delivery broker, from
// which downstream workers fan it out to client channels.
//
// Publishing is best effort: callers invoke it after the triggering state
// change has committed, and treat failures as degradation, never as a reason
// to roll back.
type NotificationPublisher interface {
	// Publish sends one notification to the broker.
	Publish(ctx context.Context, n *notification.Notification) error
}
