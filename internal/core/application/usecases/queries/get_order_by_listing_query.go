package queries

import (
	"errors"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/guard"
)

var ErrGetOrderByListingQueryIsNotConstructed = errors.New(
	"GetOrderByListingQuery must be created via NewGetOrderByListingQuery constructor",
)

// GetOrderByListingQuery translates a legacy listing id into its order, if
// one exists. Legacy client screens are listing-scoped and use this lookup
// to route into the order detail view.
//
// A listing without an order is an expected outcome, not an error: the
// response carries a Found flag instead.
type GetOrderByListingQuery struct { //nolint:recvcheck //using for validation
	listingID   kernel.ListingID
	requesterID kernel.UserID

	guard guard.ConstructorGuard
}

// NewGetOrderByListingQuery creates a query to find a listing's order.
func NewGetOrderByListingQuery(listingID kernel.ListingID, requesterID kernel.UserID) (GetOrderByListingQuery, error) {
	query := GetOrderByListingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setListingID(listingID),
		query.setRequesterID(requesterID),
	); err != nil {
		return GetOrderByListingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderByListingQueryIsNotConstructed if validation fails.
func (q GetOrderByListingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByListingQueryIsNotConstructed)
}

// ListingID returns the listing to look up.
func (q GetOrderByListingQuery) ListingID() kernel.ListingID {
	return q.listingID
}

// RequesterID returns the authenticated principal.
func (q GetOrderByListingQuery) RequesterID() kernel.UserID {
	return q.requesterID
}

func (q *GetOrderByListingQuery) setListingID(listingID kernel.ListingID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}

	q.listingID = listingID
	return nil
}

func (q *GetOrderByListingQuery) setRequesterID(requesterID kernel.UserID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	q.requesterID = requesterID
	return nil
}

// GetOrderByListingQueryResponse is the listing lookup read model. When
// Found is false the remaining fields are zero values.
type GetOrderByListingQueryResponse struct {
	Found       bool
	OrderNumber kernel.OrderNumber
	Status      string
	Role        string
}
