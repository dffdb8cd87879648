package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/repository"
)

// MatchService computes which other users share at least one route with the
// requesting user.
type MatchService struct {
	userRouteRepo repository.UserRouteRepository
}

func NewMatchService(userRouteRepo repository.UserRouteRepository) *MatchService {
	return &MatchService{userRouteRepo: userRouteRepo}
}

// FindMatches groups all associations on the requester's routes by rider and
// tallies the intersection per candidate. Results are ordered by shared route
// count descending, then username ascending, so the ranking is deterministic.
// A user with no routes matches nobody.
func (s *MatchService) FindMatches(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	ownRoutes, err := s.userRouteRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ownRoutes) == 0 {
		return []*domain.Match{}, nil
	}

	routeIDs := make([]string, len(ownRoutes))
	for i, ur := range ownRoutes {
		routeIDs[i] = ur.RouteID
	}

	riders, err := s.userRouteRepo.GetByRouteIDs(ctx, routeIDs)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID]*domain.Match)
	for _, ur := range riders {
		if ur.UserID == userID {
			continue
		}
		match, ok := byUser[ur.UserID]
		if !ok {
			match = &domain.Match{User: ur.User}
			byUser[ur.UserID] = match
		}
		match.SharedRoutes = append(match.SharedRoutes, ur.Route)
		match.SharedRouteCount++
	}

	matches := make([]*domain.Match, 0, len(byUser))
	for _, match := range byUser {
		sort.Slice(match.SharedRoutes, func(i, j int) bool {
			return match.SharedRoutes[i].ShortName < match.SharedRoutes[j].ShortName
		})
		matches = append(matches, match)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].SharedRouteCount != matches[j].SharedRouteCount {
			return matches[i].SharedRouteCount > matches[j].SharedRouteCount
		}
		return matches[i].User.Username < matches[j].User.Username
	})

	return matches, nil
}
