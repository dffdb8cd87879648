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

func TestChatRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewChatRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)

	userAID, userBID := domain.NormalizePair(alice.ID, bob.ID)
	chat := &domain.Chat{
		ID:        uuid.New(),
		UserAID:   userAID,
		UserBID:   userBID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, chat))

	// Second chat for the same pair is rejected by the unique index.
	dup := &domain.Chat{
		ID:        uuid.New(),
		UserAID:   userAID,
		UserBID:   userBID,
		CreatedAt: time.Now(),
	}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestChatRepository_GetByPair(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewChatRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)
	carol, _ := testutil.NewUserBuilder().WithUsername("carol").Build(t, testDB.DB)

	chat := testutil.SeedChat(t, testDB.DB, alice, bob)

	userAID, userBID := domain.NormalizePair(alice.ID, bob.ID)
	got, err := repo.GetByPair(ctx, userAID, userBID)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, got.ID)

	// Participant associations are populated.
	require.NotNil(t, got.UserA)
	require.NotNil(t, got.UserB)

	otherAID, otherBID := domain.NormalizePair(alice.ID, carol.ID)
	_, err = repo.GetByPair(ctx, otherAID, otherBID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestChatRepository_GetByUserID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewChatRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)
	carol, _ := testutil.NewUserBuilder().WithUsername("carol").Build(t, testDB.DB)

	testutil.SeedChat(t, testDB.DB, alice, bob)
	testutil.SeedChat(t, testDB.DB, alice, carol)

	aliceChats, err := repo.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, aliceChats, 2)

	bobChats, err := repo.GetByUserID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobChats, 1)
}
