package commands

import (
	"errors"
	"time"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"
	"resale/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreatePurchaseCommandIsNotConstructed = errors.New(
	"CreatePurchaseCommand must be created via NewCreatePurchaseCommand constructor",
)

// CreatePurchaseCommand represents a buyer's request to purchase a ticket
// listing. Carries the buyer and seller identities, the listing reference,
// and the ticket details to snapshot onto the order.
//
// Example:
//
//	cmd, err := NewCreatePurchaseCommand(buyerID, sellerID, listingID,
//	    "Hamilton", "Richard Rodgers Theatre", eventAt, price, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid purchase data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreatePurchaseCommand struct { //nolint:recvcheck //using for validation
	buyerID   kernel.UserID
	sellerID  kernel.UserID
	listingID kernel.ListingID
	title     string
	venue     string
	eventAt   time.Time
	price     decimal.Decimal
	quantity  int

	guard guard.ConstructorGuard
}

// NewCreatePurchaseCommand creates a command to purchase a listing.
// Identities must be valid, the ticket details must form a valid snapshot,
// and buyer and seller must be different users; the aggregate re-checks the
// latter on construction.
func NewCreatePurchaseCommand(
	buyerID kernel.UserID,
	sellerID kernel.UserID,
	listingID kernel.ListingID,
	title string,
	venue string,
	eventAt time.Time,
	price decimal.Decimal,
	quantity int,
) (CreatePurchaseCommand, error) {
	cmd := CreatePurchaseCommand{
		venue:   venue,
		eventAt: eventAt,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setSellerID(sellerID),
		cmd.setListingID(listingID),
		cmd.setTitle(title),
		cmd.setPrice(price),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreatePurchaseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePurchaseCommandIsNotConstructed if validation fails.
func (c CreatePurchaseCommand) Validate() error {
	return c.guard.Validate(ErrCreatePurchaseCommandIsNotConstructed)
}

// BuyerID returns the purchasing user.
func (c CreatePurchaseCommand) BuyerID() kernel.UserID {
	return c.buyerID
}

// SellerID returns the listing owner.
func (c CreatePurchaseCommand) SellerID() kernel.UserID {
	return c.sellerID
}

// ListingID returns the listing being purchased.
func (c CreatePurchaseCommand) ListingID() kernel.ListingID {
	return c.listingID
}

// Title returns the ticket title.
func (c CreatePurchaseCommand) Title() string {
	return c.title
}

// Venue returns the event venue, possibly empty.
func (c CreatePurchaseCommand) Venue() string {
	return c.venue
}

// EventAt returns the event date and time.
func (c CreatePurchaseCommand) EventAt() time.Time {
	return c.eventAt
}

// Price returns the per-ticket price.
func (c CreatePurchaseCommand) Price() decimal.Decimal {
	return c.price
}

// Quantity returns the number of tickets.
func (c CreatePurchaseCommand) Quantity() int {
	return c.quantity
}

func (c *CreatePurchaseCommand) setBuyerID(buyerID kernel.UserID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreatePurchaseCommand) setSellerID(sellerID kernel.UserID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *CreatePurchaseCommand) setListingID(listingID kernel.ListingID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}

	c.listingID = listingID
	return nil
}

func (c *CreatePurchaseCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}

	c.title = title
	return nil
}

func (c *CreatePurchaseCommand) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price")
	}

	c.price = price
	return nil
}

func (c *CreatePurchaseCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}

	c.quantity = quantity
	return nil
}
