package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jpark/commute-connect/internal/config"
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/repository/postgres"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// catalog mirrors the GO Transit reference data the production database is
// loaded with. Route ids and branding come from the feed.
var catalog = []*domain.Route{
	{ID: "LW", ShortName: "LW", LongName: "Lakeshore West", Type: domain.RouteTypeTrain, Color: "98002E", TextColor: "FFFFFF"},
	{ID: "LE", ShortName: "LE", LongName: "Lakeshore East", Type: domain.RouteTypeTrain, Color: "FF0D00", TextColor: "FFFFFF"},
	{ID: "MI", ShortName: "MI", LongName: "Milton", Type: domain.RouteTypeTrain, Color: "FF8000", TextColor: "FFFFFF"},
	{ID: "KI", ShortName: "KI", LongName: "Kitchener", Type: domain.RouteTypeTrain, Color: "00853F", TextColor: "FFFFFF"},
	{ID: "BR", ShortName: "BR", LongName: "Barrie", Type: domain.RouteTypeTrain, Color: "003767", TextColor: "FFFFFF"},
	{ID: "RH", ShortName: "RH", LongName: "Richmond Hill", Type: domain.RouteTypeTrain, Color: "0099C9", TextColor: "FFFFFF"},
	{ID: "ST", ShortName: "ST", LongName: "Stouffville", Type: domain.RouteTypeTrain, Color: "794500", TextColor: "FFFFFF"},
	{ID: "16", ShortName: "16", LongName: "Hamilton/Toronto Express", Type: domain.RouteTypeBus, Color: "235870", TextColor: "FFFFFF"},
	{ID: "21", ShortName: "21", LongName: "Milton/North York", Type: domain.RouteTypeBus, Color: "235870", TextColor: "FFFFFF"},
	{ID: "25", ShortName: "25", LongName: "Waterloo/Mississauga", Type: domain.RouteTypeBus, Color: "235870", TextColor: "FFFFFF"},
	{ID: "40", ShortName: "40", LongName: "Hamilton/Richmond Hill", Type: domain.RouteTypeBus, Color: "235870", TextColor: "FFFFFF"},
	{ID: "71", ShortName: "71", LongName: "Stouffville/Union Express", Type: domain.RouteTypeBus, Color: "235870", TextColor: "FFFFFF"},
}

func main() {
	users := flag.Int("users", 20, "number of fake users to create")
	password := flag.String("password", "commuter123", "password for every seeded user")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	repos := postgres.NewRepositories(db)
	ctx := context.Background()
	gofakeit.Seed(time.Now().UnixNano())

	if err := repos.Route.UpsertMany(ctx, catalog); err != nil {
		logrus.WithError(err).Fatal("failed to seed route catalog")
	}
	logrus.WithField("routes", len(catalog)).Info("route catalog seeded")

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	seeded := make([]*domain.User, 0, *users)
	for i := 0; i < *users; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 99))
		user := &domain.User{
			ID:           uuid.New(),
			Username:     username,
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := repos.User.Create(ctx, user); err != nil {
			logrus.WithError(err).WithField("username", username).Warn("skipping user")
			continue
		}
		seeded = append(seeded, user)

		// Each commuter rides one to four routes.
		for _, idx := range rand.Perm(len(catalog))[:1+rand.Intn(4)] {
			userRoute := &domain.UserRoute{
				ID:        uuid.New(),
				UserID:    user.ID,
				RouteID:   catalog[idx].ID,
				CreatedAt: time.Now(),
			}
			if err := repos.UserRoute.Create(ctx, userRoute); err != nil {
				logrus.WithError(err).Warn("skipping user route")
			}
		}
	}
	logrus.WithField("users", len(seeded)).Info("users seeded")

	// A few conversations so the chat list has content.
	chats := 0
	for i := 0; i+1 < len(seeded); i += 2 {
		a, b := seeded[i], seeded[i+1]
		userAID, userBID := domain.NormalizePair(a.ID, b.ID)
		chat := &domain.Chat{
			ID:        uuid.New(),
			UserAID:   userAID,
			UserBID:   userBID,
			CreatedAt: time.Now(),
		}
		if err := repos.Chat.Create(ctx, chat); err != nil {
			logrus.WithError(err).Warn("skipping chat")
			continue
		}
		chats++

		sender, receiver := a, b
		for m := 0; m < 2+rand.Intn(4); m++ {
			message := &domain.Message{
				ID:        uuid.New(),
				ChatID:    chat.ID,
				SenderID:  sender.ID,
				Content:   gofakeit.HipsterSentence(6 + rand.Intn(8)),
				CreatedAt: time.Now(),
			}
			if err := repos.Message.Create(ctx, message); err != nil {
				logrus.WithError(err).Warn("skipping message")
			}
			sender, receiver = receiver, sender
		}
	}
	logrus.WithField("chats", chats).Info("chats seeded")
}
