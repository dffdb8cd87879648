package adapter_test

import (
	"context"
	"testing"
	"time"

	"github.com/jpark/commute-connect/internal/cache/adapter"
	"github.com/jpark/commute-connect/internal/cache/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := adapter.NewMemoryCache()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, err := cache.Get(ctx, "nope")
		assert.ErrorIs(t, err, port.ErrMiss)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "k", "v", 0))

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("expired entry reads as miss", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "short", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := cache.Get(ctx, "short")
		assert.ErrorIs(t, err, port.ErrMiss)
	})

	t.Run("del reports removed count", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "a", "1", 0))
		require.NoError(t, cache.Set(ctx, "b", "2", 0))

		removed, err := cache.Del(ctx, "a", "b", "missing")
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		_, err = cache.Get(ctx, "a")
		assert.ErrorIs(t, err, port.ErrMiss)
	})
}
