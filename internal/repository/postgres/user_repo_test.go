package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/repository/postgres"
	"github.com/jpark/commute-connect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr error
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "commuter",
				Email:        "commuter@example.com",
				PasswordHash: "hashedpassword",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
		},
		{
			name: "duplicate username",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "commuter", // Same as above
				Email:        "other@example.com",
				PasswordHash: "hashedpassword2",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: gorm.ErrDuplicatedKey,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "someone_else",
				Email:        "commuter@example.com", // Same as first
				PasswordHash: "hashedpassword3",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: gorm.ErrDuplicatedKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("getbyid_user").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		id      uuid.UUID
		want    *domain.User
		wantErr bool
	}{
		{
			name: "existing user",
			id:   user.ID,
			want: user,
		},
		{
			name:    "non-existent user",
			id:      uuid.New(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Username, got.Username)
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("username_user").
		Build(t, testDB.DB)

	got, err := repo.GetByUsername(ctx, "username_user")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByUsername(ctx, "nonexistent")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("email_user@example.com").
		Build(t, testDB.DB)

	got, err := repo.GetByEmail(ctx, "email_user@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
