package handlers

import (
	"net/http"

	"github.com/jpark/commute-connect/internal/api/middleware"
	"github.com/jpark/commute-connect/internal/service"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type MatchResponse struct {
	ID               string          `json:"id"`
	Username         string          `json:"username"`
	SharedRoutes     []RouteResponse `json:"shared_routes"`
	SharedRouteCount int             `json:"shared_routes_count"`
}

// FindMatches returns the users sharing at least one route with the caller,
// ranked by overlap.
func (h *MatchHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	matches, err := h.matchService.FindMatches(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]MatchResponse, len(matches))
	for i, match := range matches {
		shared := make([]RouteResponse, len(match.SharedRoutes))
		for j, route := range match.SharedRoutes {
			shared[j] = newRouteResponse(route)
		}
		resp[i] = MatchResponse{
			ID:               match.User.ID.String(),
			Username:         match.User.Username,
			SharedRoutes:     shared,
			SharedRouteCount: match.SharedRouteCount,
		}
	}

	writeJSON(w, http.StatusOK, map[string][]MatchResponse{"users": resp})
}
