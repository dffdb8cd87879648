package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jpark/commute-connect/internal/api/handlers"
	"github.com/jpark/commute-connect/internal/api/middleware"
	"github.com/jpark/commute-connect/internal/config"
	"github.com/jpark/commute-connect/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigin))
	r.Use(middleware.Metrics)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	routeHandler := handlers.NewRouteHandler(services.Route)
	matchHandler := handlers.NewMatchHandler(services.Match)
	chatHandler := handlers.NewChatHandler(services.Chat)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Route catalog and user associations
			r.Get("/routes", routeHandler.ListCatalog)
			r.Route("/user/routes", func(r chi.Router) {
				r.Get("/", routeHandler.ListUserRoutes)
				r.Post("/", routeHandler.AddUserRoute)
				r.Delete("/{userRouteID}", routeHandler.RemoveUserRoute)
			})

			// Matching
			r.Get("/connect/users", matchHandler.FindMatches)

			// Chats
			r.Route("/chats", func(r chi.Router) {
				r.Post("/", chatHandler.CreateOrGet)
				r.Get("/", chatHandler.List)
				r.Get("/{chatID}", chatHandler.Get)
				r.Get("/{chatID}/messages", chatHandler.ListMessages)
				r.Post("/{chatID}/messages", chatHandler.SendMessage)
			})
		})
	})

	return r
}
