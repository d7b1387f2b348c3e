package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves an order's detail view from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Access control still applies on the read side: a requester who is neither
// buyer nor seller gets access denied, with no detail about the order.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve the order detail view.
// Returns ObjectNotFoundError for unknown order numbers and
// AccessDeniedError for requesters outside the order's party set.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		response GetOrderQueryResponse
		buyerID  int64
		sellerID int64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_number,
			listing_id,
			buyer_id,
			seller_id,
			status,
			title,
			venue,
			event_at,
			price,
			quantity,
			created_at
		FROM orders
		WHERE order_number = ?
	`, query.OrderNumber().String()).Row()

	err := row.Scan(
		&response.OrderNumber,
		&response.ListingID,
		&buyerID,
		&sellerID,
		&response.Status,
		&response.Title,
		&response.Venue,
		&response.EventAt,
		&response.Price,
		&response.Quantity,
		&response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderNumber", query.OrderNumber().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.BuyerID = kernel.UserID(buyerID)
	response.SellerID = kernel.UserID(sellerID)

	role := resolveRole(query.RequesterID(), response.BuyerID, response.SellerID)
	if role == order.RoleNone {
		return GetOrderQueryResponse{}, errs.NewAccessDeniedError(
			fmt.Sprintf("user %s is not a party to order %s",
				query.RequesterID().String(), query.OrderNumber().String()))
	}
	response.Role = role.String()

	response.TotalPrice = response.Price.Mul(decimal.NewFromInt(int64(response.Quantity)))

	return response, nil
}

// resolveRole mirrors the aggregate's role resolution on the read model.
func resolveRole(requester, buyerID, sellerID kernel.UserID) order.Role {
	switch {
	case requester.IsEqual(buyerID):
		return order.RoleBuyer
	case requester.IsEqual(sellerID):
		return order.RoleSeller
	default:
		return order.RoleNone
	}
}
