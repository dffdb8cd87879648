package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Username: authResp.User.Username,
		Email:    authResp.User.Email,
	}

	return user, authResp.Token
}

// SeedRoute inserts one catalog route with the given short name
func SeedRoute(t *testing.T, db *gorm.DB, id, shortName string, routeType domain.RouteType) *domain.Route {
	t.Helper()

	route := &domain.Route{
		ID:        id,
		ShortName: shortName,
		LongName:  fmt.Sprintf("%s Line", shortName),
		Type:      routeType,
		Color:     "98002E",
		TextColor: "FFFFFF",
	}
	if err := db.Create(route).Error; err != nil {
		t.Fatalf("failed to create route: %v", err)
	}
	return route
}

// RideRoute associates a user with a catalog route
func RideRoute(t *testing.T, db *gorm.DB, user *domain.User, route *domain.Route) *domain.UserRoute {
	t.Helper()

	userRoute := &domain.UserRoute{
		ID:        uuid.New(),
		UserID:    user.ID,
		RouteID:   route.ID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(userRoute).Error; err != nil {
		t.Fatalf("failed to create user route: %v", err)
	}
	return userRoute
}

// SeedChat creates a chat between two users, normalizing the pair order
func SeedChat(t *testing.T, db *gorm.DB, a, b *domain.User) *domain.Chat {
	t.Helper()

	userAID, userBID := domain.NormalizePair(a.ID, b.ID)
	chat := &domain.Chat{
		ID:        uuid.New(),
		UserAID:   userAID,
		UserBID:   userBID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(chat).Error; err != nil {
		t.Fatalf("failed to create chat: %v", err)
	}
	return chat
}

// SeedMessage appends a message to a chat at the given time
func SeedMessage(t *testing.T, db *gorm.DB, chat *domain.Chat, sender *domain.User, content string, at time.Time) *domain.Message {
	t.Helper()

	message := &domain.Message{
		ID:        uuid.New(),
		ChatID:    chat.ID,
		SenderID:  sender.ID,
		Content:   content,
		CreatedAt: at,
	}
	if err := db.Create(message).Error; err != nil {
		t.Fatalf("failed to create message: %v", err)
	}
	return message
}
