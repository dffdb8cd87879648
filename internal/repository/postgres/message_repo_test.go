package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jpark/commute-connect/internal/repository/postgres"
	"github.com/jpark/commute-connect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_GetByChatID_Ordering(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMessageRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)
	chat := testutil.SeedChat(t, testDB.DB, alice, bob)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	first := testutil.SeedMessage(t, testDB.DB, chat, alice, "first", base)
	// Same timestamp as first; insertion order must break the tie.
	second := testutil.SeedMessage(t, testDB.DB, chat, bob, "second", base)
	third := testutil.SeedMessage(t, testDB.DB, chat, alice, "third", base.Add(time.Minute))

	messages, err := repo.GetByChatID(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, first.ID, messages[0].ID)
	assert.Equal(t, second.ID, messages[1].ID)
	assert.Equal(t, third.ID, messages[2].ID)

	// created_at is non-decreasing
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}

	// Sender detail is joined
	assert.Equal(t, "alice", messages[0].Sender.Username)
}

func TestMessageRepository_GetLastByChatID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMessageRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)
	chat := testutil.SeedChat(t, testDB.DB, alice, bob)

	// Empty chat has no last message, not an error.
	last, err := repo.GetLastByChatID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Nil(t, last)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	testutil.SeedMessage(t, testDB.DB, chat, alice, "older", base)
	newest := testutil.SeedMessage(t, testDB.DB, chat, bob, "newest", base.Add(time.Minute))

	last, err = repo.GetLastByChatID(ctx, chat.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, newest.ID, last.ID)
}

func TestMessageRepository_CountUnread(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMessageRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)
	chat := testutil.SeedChat(t, testDB.DB, alice, bob)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	testutil.SeedMessage(t, testDB.DB, chat, bob, "one", base)
	testutil.SeedMessage(t, testDB.DB, chat, bob, "two", base.Add(time.Minute))
	testutil.SeedMessage(t, testDB.DB, chat, alice, "own message", base.Add(2*time.Minute))

	// Never read: everything from the other side counts, own messages never do.
	count, err := repo.CountUnread(ctx, chat.ID, alice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Read up to the first message: only the second counts.
	since := base.Add(30 * time.Second)
	count, err = repo.CountUnread(ctx, chat.ID, alice.ID, &since)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Bob has one unread from alice.
	count, err = repo.CountUnread(ctx, chat.ID, bob.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
