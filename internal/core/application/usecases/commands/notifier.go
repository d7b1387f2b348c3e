package commands

import (
	"context"
	"log/slog"

	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/notification"
	"resale/internal/core/domain/model/order"
	"resale/internal/core/domain/services"
	"resale/internal/core/ports"
	"resale/internal/pkg/monitoring"
)

// Notifier delivers the notifications produced by committed commands. Each
// method reports whether delivery fully succeeded; false means the command's
// state change stands but the response should be flagged as degraded.
type Notifier interface {
	NotifyPurchaseCreated(ctx context.Context, o *order.Order) bool
	NotifyStatusChange(ctx context.Context, o *order.Order, initiator kernel.UserID, newStatus order.Status) bool
	NotifyNewMessage(ctx context.Context, o *order.Order, message *chat.Message) bool
}

// NotificationEmitter is the production Notifier. It composes the
// notification, stores the record in its own short transaction, and pushes
// it to the delivery broker.
//
// Emission is strictly best effort and strictly post-commit: the caller
// invokes it only after its own transaction committed, and no emitter
// failure ever propagates as a command error. Failures are logged and
// surface to the client only as a degraded flag.
type NotificationEmitter struct {
	uowFactory NotificationUoWFactory
	publisher  ports.NotificationPublisher
	composer   services.NotificationComposer
	log        *slog.Logger
}

// NewNotificationEmitter creates a NotificationEmitter.
func NewNotificationEmitter(
	uowFactory NotificationUoWFactory,
	publisher ports.NotificationPublisher,
	log *slog.Logger,
) *NotificationEmitter {
	return &NotificationEmitter{
		uowFactory: uowFactory,
		publisher:  publisher,
		composer:   services.NewNotificationComposer(),
		log:        log.With("component", "notification_emitter"),
	}
}

// NotifyPurchaseCreated emits the seller's TICKET_REQUEST notification for a
// freshly created order.
func (e *NotificationEmitter) NotifyPurchaseCreated(ctx context.Context, o *order.Order) bool {
	n, err := e.composer.ComposePurchaseCreated(o)
	if err != nil {
		return e.composeFailed(notification.KindTicketRequest, o, err)
	}

	return e.emit(ctx, n)
}

// NotifyStatusChange emits the counterpart's PURCHASE_STATUS notification
// for a committed status change.
func (e *NotificationEmitter) NotifyStatusChange(
	ctx context.Context,
	o *order.Order,
	initiator kernel.UserID,
	newStatus order.Status,
) bool {
	n, err := e.composer.ComposeStatusChange(o, initiator, newStatus)
	if err != nil {
		return e.composeFailed(notification.KindPurchaseStatus, o, err)
	}

	return e.emit(ctx, n)
}

// NotifyNewMessage emits the receiver's MESSAGE notification for a stored
// chat message.
func (e *NotificationEmitter) NotifyNewMessage(ctx context.Context, o *order.Order, message *chat.Message) bool {
	n, err := e.composer.ComposeNewMessage(o, message)
	if err != nil {
		return e.composeFailed(notification.KindMessage, o, err)
	}

	return e.emit(ctx, n)
}

// emit stores the notification record and pushes it to the broker. The
// record write and the broker push fail independently; either failure marks
// the emission degraded.
func (e *NotificationEmitter) emit(ctx context.Context, n *notification.Notification) bool {
	ok := true

	if err := e.store(ctx, n); err != nil {
		e.log.Warn("failed to store notification record",
			"kind", n.Kind().String(),
			"orderNumber", n.OrderNumber().String(),
			"error", err)
		ok = false
	}

	if err := e.publisher.Publish(ctx, n); err != nil {
		e.log.Warn("failed to publish notification",
			"kind", n.Kind().String(),
			"orderNumber", n.OrderNumber().String(),
			"error", err)
		ok = false
	}

	monitoring.RecordNotification(n.Kind().String(), ok)
	return ok
}

func (e *NotificationEmitter) store(ctx context.Context, n *notification.Notification) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Add(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (e *NotificationEmitter) composeFailed(kind notification.Kind, o *order.Order, err error) bool {
	orderNumber := "unknown"
	if o != nil && o.Validate() == nil {
		orderNumber = o.OrderNumber().String()
	}

	e.log.Error("failed to compose notification",
		"kind", kind.String(), "orderNumber", orderNumber, "error", err)
	monitoring.RecordNotification(kind.String(), false)
	return false
}
