package messagerepo

import (
	"context"

	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Add saves a new message to the database.
func (r *GormMessageRepository) Add(ctx context.Context, message *chat.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByOrder retrieves an order's full conversation, oldest first. The
// sequence column reflects insertion order, so same-timestamp messages keep
// their arrival order.
func (r *GormMessageRepository) GetAllByOrder(ctx context.Context, orderNumber kernel.OrderNumber) ([]*chat.Message, error) {
	if err := orderNumber.Validate(); err != nil {
		return nil, err
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber.String()).
		Order("seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkRead flips the read flag on the given messages. Messages that are
// already read stay read, so the operation is idempotent.
func (r *GormMessageRepository) MarkRead(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id IN ?", raw).
		Update("is_read", true).Error
}
