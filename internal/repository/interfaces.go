package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type RouteRepository interface {
	GetAll(ctx context.Context) ([]*domain.Route, error)
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	UpsertMany(ctx context.Context, routes []*domain.Route) error
}

type UserRouteRepository interface {
	Create(ctx context.Context, userRoute *domain.UserRoute) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserRoute, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.UserRoute, error)
	GetByRouteIDs(ctx context.Context, routeIDs []string) ([]*domain.UserRoute, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error)
	GetByPair(ctx context.Context, userAID, userBID uuid.UUID) (*domain.Chat, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByChatID(ctx context.Context, chatID uuid.UUID) ([]*domain.Message, error)
	GetLastByChatID(ctx context.Context, chatID uuid.UUID) (*domain.Message, error)
	CountUnread(ctx context.Context, chatID, userID uuid.UUID, since *time.Time) (int64, error)
}

type ChatReadRepository interface {
	Get(ctx context.Context, chatID, userID uuid.UUID) (*domain.ChatRead, error)
	Upsert(ctx context.Context, chatID, userID uuid.UUID, readAt time.Time) error
}

type Repositories struct {
	User      UserRepository
	Route     RouteRepository
	UserRoute UserRouteRepository
	Chat      ChatRepository
	Message   MessageRepository
	ChatRead  ChatReadRepository
}
