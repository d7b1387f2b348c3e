package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderByListingQueryHandler resolves a legacy listing id to its order.
//
// Absence is a normal answer here: the caller is probing whether a purchase
// happened at all, so "no order" returns Found=false rather than an error.
// An order that does exist is still access controlled.
type GetOrderByListingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByListingQueryHandler creates a handler for listing lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderByListingQueryHandler(db *gorm.DB) GetOrderByListingQueryHandler {
	return GetOrderByListingQueryHandler{db: db}
}

// Handle executes the lookup. Returns Found=false for listings without an
// order and AccessDeniedError when the order exists but the requester is
// not one of its parties.
func (h GetOrderByListingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByListingQuery,
) (GetOrderByListingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByListingQueryResponse{}, err
	}

	var (
		response GetOrderByListingQueryResponse
		buyerID  int64
		sellerID int64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_number,
			status,
			buyer_id,
			seller_id
		FROM orders
		WHERE listing_id = ?
	`, query.ListingID().String()).Row()

	err := row.Scan(&response.OrderNumber, &response.Status, &buyerID, &sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByListingQueryResponse{Found: false}, nil
	}
	if err != nil {
		return GetOrderByListingQueryResponse{}, err
	}

	role := resolveRole(query.RequesterID(), kernel.UserID(buyerID), kernel.UserID(sellerID))
	if role == order.RoleNone {
		return GetOrderByListingQueryResponse{}, errs.NewAccessDeniedError(
			fmt.Sprintf("user %s is not a party to the order for listing %s",
				query.RequesterID().String(), query.ListingID().String()))
	}

	response.Found = true
	response.Role = role.String()

	return response, nil
}
