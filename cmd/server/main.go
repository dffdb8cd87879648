package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jpark/commute-connect/internal/api"
	"github.com/jpark/commute-connect/internal/cache/adapter"
	"github.com/jpark/commute-connect/internal/cache/port"
	"github.com/jpark/commute-connect/internal/config"
	"github.com/jpark/commute-connect/internal/repository/postgres"
	"github.com/jpark/commute-connect/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize catalog cache; without Redis the cache runs in process.
	var cache port.Cache = adapter.NewMemoryCache()
	if cfg.RedisURL != "" {
		redisCache, err := adapter.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect to redis")
		}
		defer redisCache.Close()
		cache = redisCache
	}

	// Initialize services
	services := service.NewServices(repos, cache, cfg)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server stopped")
}
