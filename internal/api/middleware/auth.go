package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/service"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// Auth verifies the bearer token on every protected request and puts the
// acting user id on the request context. Verification is local; no storage
// round-trip happens here.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid authorization header")
				return
			}

			userID, err := authService.ValidateToken(parts[1])
			if err != nil {
				logrus.WithError(err).Debug("token validation failed")
				unauthorized(w, "token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": "unauthorized", "message": message},
	})
}
