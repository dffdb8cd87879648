package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type chatReadRepository struct {
	db *gorm.DB
}

func NewChatReadRepository(db *gorm.DB) *chatReadRepository {
	return &chatReadRepository{db: db}
}

// Get returns nil without error when the user has never read the chat.
func (r *chatReadRepository) Get(ctx context.Context, chatID, userID uuid.UUID) (*domain.ChatRead, error) {
	var read domain.ChatRead
	err := r.db.WithContext(ctx).
		First(&read, "chat_id = ? AND user_id = ?", chatID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &read, nil
}

func (r *chatReadRepository) Upsert(ctx context.Context, chatID, userID uuid.UUID, readAt time.Time) error {
	read := &domain.ChatRead{
		ID:         uuid.New(),
		ChatID:     chatID,
		UserID:     userID,
		LastReadAt: readAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
	}).Create(read).Error
}
