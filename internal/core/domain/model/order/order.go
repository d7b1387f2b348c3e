package order

import (
	"errors"
	"fmt"
	"time"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents one buyer-seller ticket resale agreement. It is the
// aggregate root that owns the order lifecycle and the access-control
// decisions derived from its two party identities.
//
// Order follows these invariants:
//   - Buyer and seller identities are valid and distinct
//   - Status is always one of the defined enum values
//   - Once CONFIRMED or CANCELLED the order is terminal; no further status
//     writes are accepted
//   - Status only changes through ChangeStatus, which enforces the
//     role-permission matrix and transition reachability
//   - Orders are never deleted (audit trail)
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the internal record identifier
	id kernel.UUID

	// orderNumber is the opaque external identity of the order
	orderNumber kernel.OrderNumber

	// buyerID and sellerID are the two parties; they never change
	buyerID  kernel.UserID
	sellerID kernel.UserID

	// listingID links back to the legacy listing the purchase was created
	// against
	listingID kernel.ListingID

	// ticket is the listing snapshot captured at purchase time
	ticket TicketSnapshot

	// status is the current state in the order lifecycle
	status Status

	// createdAt is the purchase time
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in PENDING status with validation. This is the
// purchase-time constructor; reconstruction from persistence goes through
// RestoreOrder.
//
// Returns a validation error if any identity is invalid, if buyer and seller
// are the same user, or if the ticket snapshot is invalid.
func NewOrder(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	buyerID kernel.UserID,
	sellerID kernel.UserID,
	listingID kernel.ListingID,
	ticket TicketSnapshot,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setParties(buyerID, sellerID),
		order.setListingID(listingID),
		order.setTicket(ticket),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current
// status and creation time. All invariants are re-checked so corrupt rows
// never produce usable aggregates.
func RestoreOrder(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	buyerID kernel.UserID,
	sellerID kernel.UserID,
	listingID kernel.ListingID,
	ticket TicketSnapshot,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setParties(buyerID, sellerID),
		order.setListingID(listingID),
		order.setTicket(ticket),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their order numbers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.orderNumber.IsEqual(other.orderNumber)
}

// ID returns the internal record identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the order's external identity.
func (o *Order) OrderNumber() kernel.OrderNumber {
	return o.orderNumber
}

// BuyerID returns the purchasing party.
func (o *Order) BuyerID() kernel.UserID {
	return o.buyerID
}

// SellerID returns the listing party.
func (o *Order) SellerID() kernel.UserID {
	return o.sellerID
}

// ListingID returns the legacy listing identifier the purchase was created
// against.
func (o *Order) ListingID() kernel.ListingID {
	return o.listingID
}

// Ticket returns the listing snapshot captured at purchase time.
func (o *Order) Ticket() TicketSnapshot {
	return o.ticket
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the purchase time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ResolveRole determines the principal's relationship to this order. It is a
// pure function of the two recorded identities: RoleBuyer, RoleSeller, or
// RoleNone. Every read, write, and message operation on the order gates on
// this result.
func (o *Order) ResolveRole(principal kernel.UserID) Role {
	switch {
	case principal.IsEqual(o.buyerID):
		return RoleBuyer
	case principal.IsEqual(o.sellerID):
		return RoleSeller
	default:
		return RoleNone
	}
}

// IsParty reports whether the given user is the order's buyer or seller.
// A declared message receiver outside this set is rejected even when the
// sender is legitimate, so conversations cannot leak to third parties.
func (o *Order) IsParty(userID kernel.UserID) bool {
	return o.ResolveRole(userID) != RoleNone
}

// Counterpart returns the other party for a given member of the order:
// the seller for the buyer, the buyer for the seller.
//
// Returns an access-denied error when the given user is not a party.
func (o *Order) Counterpart(userID kernel.UserID) (kernel.UserID, error) {
	switch o.ResolveRole(userID) {
	case RoleBuyer:
		return o.sellerID, nil
	case RoleSeller:
		return o.buyerID, nil
	default:
		return 0, errs.NewAccessDeniedError(
			fmt.Sprintf("user %s is not a party to order %s", userID.String(), o.orderNumber.String()))
	}
}

// ChangeStatus applies a status change requested by a principal, enforcing
// the full rule chain of the lifecycle engine:
//
//  1. the target must be a defined status (invalid value)
//  2. the requester must be a party to the order (access denied)
//  3. the requester's role must be permitted to request the target
//     (access denied; permission violations win over transition violations)
//  4. the target must be reachable from the current status
//     (invalid transition; terminal statuses reach nothing)
//
// On success the in-memory status is updated. Persisting the change is the
// repository's job and must compare-and-set against the status this check
// was evaluated against.
func (o *Order) ChangeStatus(requester kernel.UserID, target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	role := o.ResolveRole(requester)
	if role == RoleNone {
		return errs.NewAccessDeniedError(
			fmt.Sprintf("user %s is not a party to order %s", requester.String(), o.orderNumber.String()))
	}

	if err := target.RequestableBy(role); err != nil {
		return err
	}

	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}

	o.status = target
	return nil
}

// setID validates and sets the internal record identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the external identity.
// This is a private method used only during construction.
func (o *Order) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}
	o.orderNumber = orderNumber
	return nil
}

// setParties validates and sets both party identities; buyer and seller must
// be distinct users. This is a private method used only during construction.
func (o *Order) setParties(buyerID, sellerID kernel.UserID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	if err := sellerID.Validate(); err != nil {
		return err
	}
	if buyerID.IsEqual(sellerID) {
		return errs.NewValueIsInvalidErrorWithCause("parties",
			fmt.Errorf("buyer and seller are both user %s", buyerID.String()))
	}
	o.buyerID = buyerID
	o.sellerID = sellerID
	return nil
}

// setListingID validates and sets the legacy listing identifier.
// This is a private method used only during construction.
func (o *Order) setListingID(listingID kernel.ListingID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	o.listingID = listingID
	return nil
}

// setTicket validates and sets the ticket snapshot.
// This is a private method used only during construction.
func (o *Order) setTicket(ticket TicketSnapshot) error {
	if err := ticket.Validate(); err != nil {
		return err
	}
	o.ticket = ticket
	return nil
}

// setStatus validates and sets the status during reconstruction.
// This is a private method used only during construction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
