package queries

import (
	"errors"

	"resale/internal/pkg/guard"
)

var ErrGetOrderStatusCountsQueryIsNotConstructed = errors.New(
	"GetOrderStatusCountsQuery must be created via NewGetOrderStatusCountsQuery constructor",
)

// GetOrderStatusCountsQuery retrieves the number of orders in each lifecycle
// status. Feeds the orders-by-status gauge and operational dashboards.
//
// Example:
//
//	query := NewGetOrderStatusCountsQuery()
//	handler := NewGetOrderStatusCountsQueryHandler(db)
//
//	counts, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to count orders: %w", err)
//	}
//	fmt.Printf("%d orders awaiting confirmation\n", counts["COMPLETED"])
type GetOrderStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatusCountsQuery creates a query to count orders by status.
// This is a parameterless query covering all orders.
func NewGetOrderStatusCountsQuery() GetOrderStatusCountsQuery {
	return GetOrderStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusCountsQueryIsNotConstructed if validation fails.
func (q GetOrderStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusCountsQueryIsNotConstructed)
}
