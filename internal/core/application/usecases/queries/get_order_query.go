// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order's detail view for an authenticated
// party. The requester's role is resolved against the stored identities and
// returned with the view, so clients render the right actions without a
// second call.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderNumber, requesterID)
//	handler := NewGetOrderQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve order: %w", err)
//	}
//	fmt.Printf("order %s is %s, you are the %s\n",
//	    view.OrderNumber, view.Status, view.Role)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	requesterID kernel.UserID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve an order's detail view.
func NewGetOrderQuery(orderNumber kernel.OrderNumber, requesterID kernel.UserID) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderNumber(orderNumber),
		query.setRequesterID(requesterID),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderNumber returns the order to fetch.
func (q GetOrderQuery) OrderNumber() kernel.OrderNumber {
	return q.orderNumber
}

// RequesterID returns the authenticated principal.
func (q GetOrderQuery) RequesterID() kernel.UserID {
	return q.requesterID
}

func (q *GetOrderQuery) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}

	q.orderNumber = orderNumber
	return nil
}

func (q *GetOrderQuery) setRequesterID(requesterID kernel.UserID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	q.requesterID = requesterID
	return nil
}

// GetOrderQueryResponse is the order detail read model. Role is the
// requester's relationship to the order ("buyer" or "seller"); outsiders
// never receive this model at all.
type GetOrderQueryResponse struct {
	OrderNumber kernel.OrderNumber
	ListingID   kernel.ListingID
	BuyerID     kernel.UserID
	SellerID    kernel.UserID
	Status      string
	Role        string
	Title       string
	Venue       string
	EventAt     time.Time
	Price       decimal.Decimal
	Quantity    int
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}
