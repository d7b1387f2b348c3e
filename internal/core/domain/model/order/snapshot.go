package order

import (
	"fmt"
	"time"

	"resale/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TicketSnapshot captures the ticket details of the listing at purchase time:
// title, venue, event time, unit price, and quantity. The snapshot keeps the
// order meaningful even if the original listing is later edited or removed.
//
// TicketSnapshot is an immutable value object.
type TicketSnapshot struct {
	title    string
	venue    string
	eventAt  time.Time
	price    decimal.Decimal
	quantity int

	isConstructed bool
}

// NewTicketSnapshot creates a validated ticket snapshot.
// Title is required; venue may be empty (some listings never set one).
// Quantity must be at least 1 and price must not be negative.
func NewTicketSnapshot(title, venue string, eventAt time.Time, price decimal.Decimal, quantity int) (TicketSnapshot, error) {
	if title == "" {
		return TicketSnapshot{}, errs.NewValueIsRequiredError("title")
	}
	if quantity < 1 {
		return TicketSnapshot{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	if price.IsNegative() {
		return TicketSnapshot{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price.String()))
	}

	return TicketSnapshot{
		title:         title,
		venue:         venue,
		eventAt:       eventAt,
		price:         price,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// Validate ensures the snapshot was created via NewTicketSnapshot.
func (t TicketSnapshot) Validate() error {
	if !t.isConstructed {
		return errs.NewValueIsRequiredError("TicketSnapshot must be created via NewTicketSnapshot")
	}
	return nil
}

// Title returns the ticket title.
func (t TicketSnapshot) Title() string {
	return t.title
}

// Venue returns the event venue, possibly empty.
func (t TicketSnapshot) Venue() string {
	return t.venue
}

// EventAt returns the event date and time.
func (t TicketSnapshot) EventAt() time.Time {
	return t.eventAt
}

// Price returns the per-ticket price.
func (t TicketSnapshot) Price() decimal.Decimal {
	return t.price
}

// Quantity returns the number of tickets in the order.
func (t TicketSnapshot) Quantity() int {
	return t.quantity
}

// TotalPrice returns price multiplied by quantity.
func (t TicketSnapshot) TotalPrice() decimal.Decimal {
	return t.price.Mul(decimal.NewFromInt(int64(t.quantity)))
}
