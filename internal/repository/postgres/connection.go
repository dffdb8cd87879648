package postgres

import (
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database and migrates the schema. TranslateError is
// enabled so unique-constraint violations surface as gorm.ErrDuplicatedKey,
// which is what the services rely on for duplicate route associations,
// concurrent chat creation, and signup races.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Route{},
		&domain.UserRoute{},
		&domain.Chat{},
		&domain.ChatRead{},
		&domain.Message{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:      NewUserRepository(db),
		Route:     NewRouteRepository(db),
		UserRoute: NewUserRouteRepository(db),
		Chat:      NewChatRepository(db),
		Message:   NewMessageRepository(db),
		ChatRead:  NewChatReadRepository(db),
	}
}
