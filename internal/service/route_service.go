package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/cache/port"
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "routes:catalog"
	catalogCacheTTL = 12 * time.Hour
)

// RouteService owns the route catalog reads and the user-route associations.
// The catalog is immutable reference data, so its listing goes through a
// read-through cache when one is configured.
type RouteService struct {
	routeRepo     repository.RouteRepository
	userRouteRepo repository.UserRouteRepository
	cache         port.Cache
}

func NewRouteService(routeRepo repository.RouteRepository, userRouteRepo repository.UserRouteRepository, cache port.Cache) *RouteService {
	return &RouteService{
		routeRepo:     routeRepo,
		userRouteRepo: userRouteRepo,
		cache:         cache,
	}
}

// ListCatalog returns the full reference list, ordered by short name.
func (s *RouteService) ListCatalog(ctx context.Context) ([]*domain.Route, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
			var routes []*domain.Route
			if err := json.Unmarshal([]byte(cached), &routes); err == nil {
				return routes, nil
			}
		} else if !errors.Is(err, port.ErrMiss) {
			logrus.WithError(err).Warn("catalog cache read failed")
		}
	}

	routes, err := s.routeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(routes); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, string(payload), catalogCacheTTL); err != nil {
				logrus.WithError(err).Warn("catalog cache write failed")
			}
		}
	}

	return routes, nil
}

func (s *RouteService) ListUserRoutes(ctx context.Context, userID uuid.UUID) ([]*domain.UserRoute, error) {
	return s.userRouteRepo.GetByUserID(ctx, userID)
}

// AddRoute associates the user with a catalog route. Duplicate submissions,
// concurrent or not, are rejected by the (user_id, route_id) unique index.
func (s *RouteService) AddRoute(ctx context.Context, userID uuid.UUID, routeID string) (*domain.UserRoute, error) {
	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}

	userRoute := &domain.UserRoute{
		ID:        uuid.New(),
		UserID:    userID,
		RouteID:   route.ID,
		CreatedAt: time.Now(),
	}

	if err := s.userRouteRepo.Create(ctx, userRoute); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrRouteAlreadyAdded
		}
		return nil, err
	}

	userRoute.Route = route
	return userRoute, nil
}

func (s *RouteService) RemoveRoute(ctx context.Context, userID, userRouteID uuid.UUID) error {
	userRoute, err := s.userRouteRepo.GetByID(ctx, userRouteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserRouteNotFound
		}
		return err
	}

	if userRoute.UserID != userID {
		return domain.ErrNotRouteOwner
	}

	return s.userRouteRepo.Delete(ctx, userRouteID)
}
