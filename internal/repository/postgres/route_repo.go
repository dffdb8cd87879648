package postgres

import (
	"context"

	"github.com/jpark/commute-connect/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type routeRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *routeRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) GetAll(ctx context.Context) ([]*domain.Route, error) {
	var routes []*domain.Route
	err := r.db.WithContext(ctx).Order("short_name ASC").Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	var route domain.Route
	err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) UpsertMany(ctx context.Context, routes []*domain.Route) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(routes).Error
}
