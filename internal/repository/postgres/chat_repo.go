package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"gorm.io/gorm"
)

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *chatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		First(&chat, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetByPair expects IDs already in canonical order (see domain.NormalizePair).
func (r *chatRepository) GetByPair(ctx context.Context, userAID, userBID uuid.UUID) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		First(&chat, "user_a_id = ? AND user_b_id = ?", userAID, userBID).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error) {
	var chats []*domain.Chat
	err := r.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}
