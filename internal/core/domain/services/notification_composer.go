package services

import (
	"fmt"

	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/notification"
	"resale/internal/core/domain/model/order"
)

// NotificationComposer is a domain service that turns order events into
// notifications for the right recipient.
//
// Recipient rules:
//   - A purchase notifies the seller (their listing was bought)
//   - A status change notifies the counterpart of the initiating party;
//     the initiator already knows what they did
//   - A chat message notifies its receiver
//
// The composer only builds notifications. Persisting and publishing them is
// the emitting use case's job, and happens after the triggering state change
// has committed.
//
// Example usage:
//
//	composer := services.NewNotificationComposer()
//	n, err := composer.ComposeStatusChange(o, sellerID, order.Processing)
//	// n is addressed to the buyer
type NotificationComposer struct{}

// NewNotificationComposer creates a new NotificationComposer instance.
func NewNotificationComposer() NotificationComposer {
	return NotificationComposer{}
}

// ComposePurchaseCreated builds the TICKET_REQUEST notification sent to the
// seller when a buyer purchases one of their listings.
func (c NotificationComposer) ComposePurchaseCreated(o *order.Order) (*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	ticket := o.Ticket()
	body := fmt.Sprintf("A buyer purchased %d x %s for %s. Please start ticketing.",
		ticket.Quantity(), ticket.Title(), ticket.TotalPrice().String())

	return notification.NewNotification(kernel.NewUUID(), notification.KindTicketRequest,
		o.SellerID(), o.OrderNumber(), "New ticket request", body)
}

// ComposeStatusChange builds the PURCHASE_STATUS notification for a committed
// status change. The recipient is the counterpart of the initiating party, so
// a seller-driven change notifies the buyer and a buyer-driven change
// notifies the seller.
//
// Returns an access-denied error when the initiator is not a party to the
// order; use cases check membership before committing, so that is a
// programming error rather than a user-facing one.
func (c NotificationComposer) ComposeStatusChange(
	o *order.Order,
	initiator kernel.UserID,
	newStatus order.Status,
) (*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}

	recipient, err := o.Counterpart(initiator)
	if err != nil {
		return nil, err
	}

	title, body := statusChangeContent(o, newStatus)

	return notification.NewNotification(kernel.NewUUID(), notification.KindPurchaseStatus,
		recipient, o.OrderNumber(), title, body)
}

// ComposeNewMessage builds the MESSAGE notification for a stored chat
// message. The body carries a short preview of the message text.
func (c NotificationComposer) ComposeNewMessage(o *order.Order, message *chat.Message) (*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := message.Validate(); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("New message about %s", o.Ticket().Title())

	return notification.NewNotification(kernel.NewUUID(), notification.KindMessage,
		message.ReceiverID(), o.OrderNumber(), title, message.Preview())
}

// statusChangeContent returns the display title and body for a status change
// notification. The wording is addressed to the recipient, which is always
// the counterpart of the party who made the change.
func statusChangeContent(o *order.Order, newStatus order.Status) (string, string) {
	ticket := o.Ticket()

	switch newStatus {
	case order.Processing:
		return "Order update",
			fmt.Sprintf("The seller has started preparing your tickets for %s.", ticket.Title())
	case order.Completed:
		return "Order update",
			fmt.Sprintf("Your tickets for %s are ready. Please review and confirm your order.", ticket.Title())
	case order.Confirmed:
		return "Order confirmed",
			fmt.Sprintf("The buyer has confirmed the order for %s.", ticket.Title())
	case order.Cancelled:
		return "Order cancelled",
			fmt.Sprintf("The order for %s has been cancelled.", ticket.Title())
	default:
		// Pending is never a transition target; kept for completeness.
		return "Order update",
			fmt.Sprintf("The order for %s is now %s.", ticket.Title(), newStatus.String())
	}
}
