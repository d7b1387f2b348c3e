// Package messagerepo provides data transfer objects and mapping functions
// for chat message persistence. Messages are stored append-only; the read
// flag is the only mutable column.
package messagerepo

import (
	"time"

	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting chat messages.
// Conversations are fetched by order number, so that column is indexed. Seq
// is a database-assigned monotonic sequence; ordering by it preserves
// arrival order even for messages created in the same instant, which a
// created_at sort with a random-UUID tiebreak would not.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex"`
	OrderNumber string    `gorm:"size:64;index"`
	SenderID    int64
	ReceiverID  int64
	Body        string `gorm:"type:text"`
	IsRead      bool   `gorm:"column:is_read"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for message entities.
// Overrides GORM's default naming convention to use "messages".
func (MessageDTO) TableName() string {
	return "messages"
}

// fromDomain converts a message entity to its database representation.
func fromDomain(message *chat.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		OrderNumber: message.OrderNumber().String(),
		SenderID:    message.SenderID().Int64(),
		ReceiverID:  message.ReceiverID().Int64(),
		Body:        message.Body(),
		IsRead:      message.IsRead(),
		CreatedAt:   message.CreatedAt(),
	}
}

// toDomain converts a database DTO to a message entity.
func toDomain(dto MessageDTO) (*chat.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderNumber, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.NewUserID(dto.SenderID)
	if err != nil {
		return nil, err
	}

	receiverID, err := kernel.NewUserID(dto.ReceiverID)
	if err != nil {
		return nil, err
	}

	return chat.RestoreMessage(id, orderNumber, senderID, receiverID, dto.Body, dto.IsRead, dto.CreatedAt)
}
