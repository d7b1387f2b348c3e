package notification

import (
	"errors"
	"fmt"
	"time"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"
)

// Kind categorizes a notification for client-side routing and display.
type Kind string

const (
	// KindTicketRequest tells a seller that a buyer purchased one of their
	// listings and ticketing should start.
	KindTicketRequest Kind = "TICKET_REQUEST"

	// KindPurchaseStatus tells a party that the counterpart moved the order
	// to a new status.
	KindPurchaseStatus Kind = "PURCHASE_STATUS"

	// KindMessage tells a party that the counterpart sent a chat message.
	KindMessage Kind = "MESSAGE"
)

// getValidKinds returns the set of defined notification kinds.
func getValidKinds() map[Kind]struct{} {
	return map[Kind]struct{}{
		KindTicketRequest:  {},
		KindPurchaseStatus: {},
		KindMessage:        {},
	}
}

// Validate checks the kind against the defined set.
func (k Kind) Validate() error {
	if _, ok := getValidKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid notification kind", string(k)))
	}
	return nil
}

// String returns the wire form of the kind.
func (k Kind) String() string {
	return string(k)
}

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification")

// Notification is one user-facing alert produced by an order event: a
// purchase, a status change, or a chat message. Each event produces exactly
// one notification for exactly one recipient; retried or replayed requests
// must not produce duplicates, which the use cases guarantee by emitting
// only after a successful state write.
//
// The link is a relative deep link into the order detail screen.
type Notification struct {
	id          kernel.UUID
	kind        Kind
	recipientID kernel.UserID
	orderNumber kernel.OrderNumber
	title       string
	body        string
	link        string
	isRead      bool
	createdAt   time.Time

	isConstructed bool
}

// NewNotification creates a notification with validation. The deep link is
// derived from the order number; callers never pass one in.
func NewNotification(
	id kernel.UUID,
	kind Kind,
	recipientID kernel.UserID,
	orderNumber kernel.OrderNumber,
	title string,
	body string,
) (*Notification, error) {
	n := &Notification{
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setKind(kind),
		n.setRecipient(recipientID),
		n.setOrderNumber(orderNumber),
		n.setContent(title, body),
	); err != nil {
		return nil, err
	}

	n.link = DeepLink(n.orderNumber)
	return n, nil
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	kind Kind,
	recipientID kernel.UserID,
	orderNumber kernel.OrderNumber,
	title string,
	body string,
	link string,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		link:          link,
		isRead:        isRead,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setKind(kind),
		n.setRecipient(recipientID),
		n.setOrderNumber(orderNumber),
		n.setContent(title, body),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// DeepLink returns the relative client route for an order's detail screen.
func DeepLink(orderNumber kernel.OrderNumber) string {
	return "/transaction/order/" + orderNumber.String()
}

// Validate ensures the Notification instance was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}

	return nil
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// Kind returns the notification category.
func (n *Notification) Kind() Kind {
	return n.kind
}

// RecipientID returns the user the notification is addressed to.
func (n *Notification) RecipientID() kernel.UserID {
	return n.recipientID
}

// OrderNumber returns the order the notification refers to.
func (n *Notification) OrderNumber() kernel.OrderNumber {
	return n.orderNumber
}

// Title returns the display title.
func (n *Notification) Title() string {
	return n.title
}

// Body returns the display body.
func (n *Notification) Body() string {
	return n.body
}

// Link returns the relative deep link to the order detail screen.
func (n *Notification) Link() string {
	return n.link
}

// IsRead reports whether the recipient has opened the notification. New
// notifications start unread; the flag is flipped by the downstream
// notification service, never by this engine.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns the emission time.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// setID validates and sets the notification identifier.
// This is a private method used only during construction.
func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

// setKind validates and sets the category.
// This is a private method used only during construction.
func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

// setRecipient validates and sets the addressee.
// This is a private method used only during construction.
func (n *Notification) setRecipient(recipientID kernel.UserID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	n.recipientID = recipientID
	return nil
}

// setOrderNumber validates and sets the referenced order.
// This is a private method used only during construction.
func (n *Notification) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}
	n.orderNumber = orderNumber
	return nil
}

// setContent validates and sets title and body.
// This is a private method used only during construction.
func (n *Notification) setContent(title, body string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	n.title = title
	n.body = body
	return nil
}
