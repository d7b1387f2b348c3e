// Package notificationrepo provides data transfer objects and mapping
// functions for notification record persistence. Records are written once
// per order event and never updated.
package notificationrepo

import (
	"time"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification records. Recipient is indexed for per-user inbox reads.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind        string    `gorm:"size:32"`
	RecipientID int64     `gorm:"index"`
	OrderNumber string    `gorm:"size:64;index"`
	Title       string
	Body        string `gorm:"type:text"`
	Link        string
	IsRead      bool `gorm:"column:is_read"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for notification entities.
// Overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification to its database representation.
func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID().Bytes(),
		Kind:        n.Kind().String(),
		RecipientID: n.RecipientID().Int64(),
		OrderNumber: n.OrderNumber().String(),
		Title:       n.Title(),
		Body:        n.Body(),
		Link:        n.Link(),
		IsRead:      n.IsRead(),
		CreatedAt:   n.CreatedAt(),
	}
}

// toDomain converts a database DTO to a notification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.NewUserID(dto.RecipientID)
	if err != nil {
		return nil, err
	}

	orderNumber, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(id, notification.Kind(dto.Kind),
		recipientID, orderNumber, dto.Title, dto.Body, dto.Link, dto.IsRead, dto.CreatedAt)
}
