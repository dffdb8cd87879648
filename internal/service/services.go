package service

import (
	"github.com/jpark/commute-connect/internal/cache/port"
	"github.com/jpark/commute-connect/internal/config"
	"github.com/jpark/commute-connect/internal/repository"
)

type Services struct {
	Auth  *AuthService
	Route *RouteService
	Match *MatchService
	Chat  *ChatService
}

func NewServices(repos *repository.Repositories, cache port.Cache, cfg *config.Config) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, cfg),
		Route: NewRouteService(repos.Route, repos.UserRoute, cache),
		Match: NewMatchService(repos.UserRoute),
		Chat:  NewChatService(repos.Chat, repos.Message, repos.ChatRead, repos.User),
	}
}
