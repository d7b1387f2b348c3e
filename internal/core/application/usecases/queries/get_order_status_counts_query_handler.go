package queries

import (
	"context"

	"resale/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatusCountsQueryHandler counts orders per lifecycle status.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderStatusCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusCountsQueryHandler creates a handler for status count
// queries. Requires a GORM database connection for query execution.
func NewGetOrderStatusCountsQueryHandler(db *gorm.DB) GetOrderStatusCountsQueryHandler {
	return GetOrderStatusCountsQueryHandler{db: db}
}

// Handle executes the count query. Every defined status appears in the
// result, zero-filled, so gauge consumers reset stale series.
func (h GetOrderStatusCountsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusCountsQuery,
) (map[string]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := map[string]int64{
		order.Pending.String():    0,
		order.Processing.String(): 0,
		order.Completed.String():  0,
		order.Confirmed.String():  0,
		order.Cancelled.String():  0,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int64
		)

		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
