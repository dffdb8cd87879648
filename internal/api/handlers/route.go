package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/api/middleware"
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/service"
)

type RouteHandler struct {
	routeService *service.RouteService
}

func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

type RouteResponse struct {
	ID        string `json:"route_id"`
	ShortName string `json:"route_short_name"`
	LongName  string `json:"route_long_name"`
	Type      string `json:"route_type"`
	Color     string `json:"route_color"`
	TextColor string `json:"route_text_color"`
}

type UserRouteResponse struct {
	ID        string        `json:"id"`
	RouteID   string        `json:"route_id"`
	CreatedAt time.Time     `json:"created_at"`
	Route     RouteResponse `json:"route"`
}

type AddRouteRequest struct {
	RouteID string `json:"route_id"`
}

func newRouteResponse(route *domain.Route) RouteResponse {
	return RouteResponse{
		ID:        route.ID,
		ShortName: route.ShortName,
		LongName:  route.LongName,
		Type:      string(route.Type),
		Color:     route.Color,
		TextColor: route.TextColor,
	}
}

func newUserRouteResponse(userRoute *domain.UserRoute) UserRouteResponse {
	resp := UserRouteResponse{
		ID:        userRoute.ID.String(),
		RouteID:   userRoute.RouteID,
		CreatedAt: userRoute.CreatedAt,
	}
	if userRoute.Route != nil {
		resp.Route = newRouteResponse(userRoute.Route)
	}
	return resp
}

// ListCatalog returns the full reference list of transit routes.
func (h *RouteHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	routes, err := h.routeService.ListCatalog(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]RouteResponse, len(routes))
	for i, route := range routes {
		resp[i] = newRouteResponse(route)
	}
	writeJSON(w, http.StatusOK, map[string][]RouteResponse{"routes": resp})
}

func (h *RouteHandler) ListUserRoutes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	userRoutes, err := h.routeService.ListUserRoutes(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]UserRouteResponse, len(userRoutes))
	for i, ur := range userRoutes {
		resp[i] = newUserRouteResponse(ur)
	}
	writeJSON(w, http.StatusOK, map[string][]UserRouteResponse{"routes": resp})
}

func (h *RouteHandler) AddUserRoute(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	var req AddRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}
	if req.RouteID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "route_id is required")
		return
	}

	userRoute, err := h.routeService.AddRoute(r.Context(), userID, req.RouteID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]UserRouteResponse{"route": newUserRouteResponse(userRoute)})
}

func (h *RouteHandler) RemoveUserRoute(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	userRouteID, err := uuid.Parse(chi.URLParam(r, "userRouteID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid route id")
		return
	}

	if err := h.routeService.RemoveRoute(r.Context(), userID, userRouteID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "route removed"})
}
