package orderrepo

import (
	"context"
	"errors"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrderNumber retrieves an order by its external identity.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber kernel.OrderNumber) (*order.Order, error) {
	if err := orderNumber.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", orderNumber.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByListingID retrieves the order created against a legacy listing.
func (r *GormOrderRepository) GetByListingID(ctx context.Context, listingID kernel.ListingID) (*order.Order, error) {
	if err := listingID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "listing_id = ?", listingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("listingId", listingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus persists a status change with compare-and-set semantics. The
// conditional UPDATE only matches while the stored status still equals
// expectedStatus, so of two racing writers exactly one sees RowsAffected=1.
// The loser is told apart from a missing order by a follow-up existence
// check.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("order_number = ? AND status = ?", aggregate.OrderNumber().String(), expectedStatus.String()).
		Update("status", aggregate.Status().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("order_number = ?", aggregate.OrderNumber().String()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderNumber", aggregate.OrderNumber().String())
		}
		return errs.NewConcurrencyConflictError("order", aggregate.OrderNumber().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
