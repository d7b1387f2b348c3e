// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number carries a unique constraint (one external identity per
// order) and the listing id is unique as well: a listing is sold once.
// Status is stored in its wire form so raw SQL reads and the API speak the
// same vocabulary.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"size:64;uniqueIndex"`
	BuyerID     int64     `gorm:"index"`
	SellerID    int64     `gorm:"index"`
	ListingID   string    `gorm:"size:64;uniqueIndex"`
	Title       string
	Venue       string
	EventAt     time.Time
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity    int
	Status      string `gorm:"size:16;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	ticket := aggregate.Ticket()

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber().String(),
		BuyerID:     aggregate.BuyerID().Int64(),
		SellerID:    aggregate.SellerID().Int64(),
		ListingID:   aggregate.ListingID().String(),
		Title:       ticket.Title(),
		Venue:       ticket.Venue(),
		EventAt:     ticket.EventAt(),
		Price:       ticket.Price(),
		Quantity:    ticket.Quantity(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder so corrupt rows are
// rejected instead of flowing into the rule engine.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderNumber, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.NewUserID(dto.BuyerID)
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.NewUserID(dto.SellerID)
	if err != nil {
		return nil, err
	}

	listingID, err := kernel.ListingIDFromString(dto.ListingID)
	if err != nil {
		return nil, err
	}

	ticket, err := order.NewTicketSnapshot(dto.Title, dto.Venue, dto.EventAt, dto.Price, dto.Quantity)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, orderNumber, buyerID, sellerID, listingID, ticket, status, dto.CreatedAt)
}
