package ports

import (
	"context"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are append-and-update only; there is no delete, the full history of
// terminal orders stays queryable.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Fails when the order number already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// GetByOrderNumber retrieves an order by its external identity.
	// Returns ObjectNotFoundError when no such order exists.
	GetByOrderNumber(ctx context.Context, orderNumber kernel.OrderNumber) (*order.Order, error)

	// GetByListingID retrieves the order created against a legacy listing.
	// Returns ObjectNotFoundError when the listing has no order.
	GetByListingID(ctx context.Context, listingID kernel.ListingID) (*order.Order, error)

	// UpdateStatus persists a status change with compare-and-set semantics:
	// the row is updated only while its stored status still equals
	// expectedStatus. When a concurrent writer got there first, it returns
	// ConcurrencyConflictError and the aggregate's change is discarded.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error
}
