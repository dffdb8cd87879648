package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetByChatID returns the chat's full message log, oldest first. created_at is
// not unique at sub-second granularity, so seq breaks ties in insertion order.
func (r *messageRepository) GetByChatID(ctx context.Context, chatID uuid.UUID) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at ASC, seq ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) GetLastByChatID(ctx context.Context, chatID uuid.UUID) (*domain.Message, error) {
	var message domain.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at DESC, seq DESC").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// CountUnread counts messages in the chat sent by the other participant after
// the reader's last-read marker. A nil since means the reader has never opened
// the chat and every incoming message counts.
func (r *messageRepository) CountUnread(ctx context.Context, chatID, userID uuid.UUID, since *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_id = ? AND sender_id <> ?", chatID, userID)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
