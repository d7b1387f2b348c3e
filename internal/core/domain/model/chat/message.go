package chat

import (
	"errors"
	"fmt"
	"time"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"
)

// previewLimit is the maximum number of characters (runes, not bytes) of a
// message body shown in notification previews.
const previewLimit = 20

// ErrMessageIsNotConstructed is returned when a Message instance was not
// created through NewMessage or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Message is one entry in an order's private conversation thread. Messages
// belong to exactly one order and may only flow between that order's two
// parties; party membership is the caller's responsibility since the
// aggregate boundary lives in the order package.
//
// A message is immutable after creation except for its read flag, which
// flips once when the receiver fetches the conversation.
type Message struct {
	id          kernel.UUID
	orderNumber kernel.OrderNumber
	senderID    kernel.UserID
	receiverID  kernel.UserID
	body        string
	isRead      bool
	createdAt   time.Time

	isConstructed bool
}

// NewMessage creates an unread message with validation. The body must be
// non-empty and sender and receiver must be different users; whether both
// are parties to the order is checked by the use case against the order
// aggregate.
func NewMessage(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	senderID kernel.UserID,
	receiverID kernel.UserID,
	body string,
) (*Message, error) {
	message := &Message{
		isRead:        false,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		message.setID(id),
		message.setOrderNumber(orderNumber),
		message.setParticipants(senderID, receiverID),
		message.setBody(body),
	); err != nil {
		return nil, err
	}

	return message, nil
}

// RestoreMessage reconstructs a Message from persistence, including its read
// flag and creation time.
func RestoreMessage(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	senderID kernel.UserID,
	receiverID kernel.UserID,
	body string,
	isRead bool,
	createdAt time.Time,
) (*Message, error) {
	message := &Message{
		isRead:        isRead,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		message.setID(id),
		message.setOrderNumber(orderNumber),
		message.setParticipants(senderID, receiverID),
		message.setBody(body),
	); err != nil {
		return nil, err
	}

	return message, nil
}

// Validate ensures the Message instance was properly constructed.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}

	return nil
}

// ID returns the message identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// OrderNumber returns the order the message belongs to.
func (m *Message) OrderNumber() kernel.OrderNumber {
	return m.orderNumber
}

// SenderID returns the authoring party.
func (m *Message) SenderID() kernel.UserID {
	return m.senderID
}

// ReceiverID returns the addressed party.
func (m *Message) ReceiverID() kernel.UserID {
	return m.receiverID
}

// Body returns the full message text.
func (m *Message) Body() string {
	return m.body
}

// IsRead reports whether the receiver has fetched this message.
func (m *Message) IsRead() bool {
	return m.isRead
}

// CreatedAt returns the send time.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// MarkRead flips the read flag. Marking an already-read message is a no-op,
// so concurrent conversation fetches are harmless.
func (m *Message) MarkRead() {
	m.isRead = true
}

// IsAddressedTo reports whether the given user is this message's receiver.
func (m *Message) IsAddressedTo(userID kernel.UserID) bool {
	return m.receiverID.IsEqual(userID)
}

// Preview returns the body truncated for notification display: the first 20
// characters followed by "..." when the body is longer. Truncation counts
// characters, never bytes, so multibyte text is never split mid-rune.
func (m *Message) Preview() string {
	runes := []rune(m.body)
	if len(runes) <= previewLimit {
		return m.body
	}
	return string(runes[:previewLimit]) + "..."
}

// setID validates and sets the message identifier.
// This is a private method used only during construction.
func (m *Message) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

// setOrderNumber validates and sets the owning order.
// This is a private method used only during construction.
func (m *Message) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}
	m.orderNumber = orderNumber
	return nil
}

// setParticipants validates and sets sender and receiver; they must be
// distinct users. This is a private method used only during construction.
func (m *Message) setParticipants(senderID, receiverID kernel.UserID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	if err := receiverID.Validate(); err != nil {
		return err
	}
	if senderID.IsEqual(receiverID) {
		return errs.NewValueIsInvalidErrorWithCause("receiverId",
			fmt.Errorf("sender and receiver are both user %s", senderID.String()))
	}
	m.senderID = senderID
	m.receiverID = receiverID
	return nil
}

// setBody validates and sets the message text.
// This is a private method used only during construction.
func (m *Message) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	m.body = body
	return nil
}
