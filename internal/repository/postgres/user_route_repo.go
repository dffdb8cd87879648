package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"gorm.io/gorm"
)

type userRouteRepository struct {
	db *gorm.DB
}

func NewUserRouteRepository(db *gorm.DB) *userRouteRepository {
	return &userRouteRepository{db: db}
}

func (r *userRouteRepository) Create(ctx context.Context, userRoute *domain.UserRoute) error {
	return r.db.WithContext(ctx).Create(userRoute).Error
}

func (r *userRouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserRoute, error) {
	var userRoute domain.UserRoute
	err := r.db.WithContext(ctx).Preload("Route").First(&userRoute, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &userRoute, nil
}

func (r *userRouteRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.UserRoute, error) {
	var userRoutes []*domain.UserRoute
	err := r.db.WithContext(ctx).
		Preload("Route").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&userRoutes).Error
	if err != nil {
		return nil, err
	}
	return userRoutes, nil
}

// GetByRouteIDs returns every association touching any of the given routes,
// with rider and route detail joined. This is the single query the matching
// engine groups per candidate.
func (r *userRouteRepository) GetByRouteIDs(ctx context.Context, routeIDs []string) ([]*domain.UserRoute, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}
	var userRoutes []*domain.UserRoute
	err := r.db.WithContext(ctx).
		Preload("Route").
		Preload("User").
		Where("route_id IN ?", routeIDs).
		Find(&userRoutes).Error
	if err != nil {
		return nil, err
	}
	return userRoutes, nil
}

func (r *userRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.UserRoute{}, "id = ?", id).Error
}
