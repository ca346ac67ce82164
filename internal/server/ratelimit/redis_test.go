package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when GUIALOCAL_TEST_REDIS_URL is set.
func newTestRedisLimiter(t *testing.T, limit int64, window time.Duration) *RedisLimiter {
	t.Helper()
	url := os.Getenv("GUIALOCAL_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GUIALOCAL_TEST_REDIS_URL not set")
	}
	client, err := NewRedisClient(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client, limit, window)
}

func TestRedisLimiter_BlocksAndResets(t *testing.T) {
	ctx := context.Background()
	l := newTestRedisLimiter(t, 2, time.Minute)
	key := uuid.NewString() + "@example.pt"
	t.Cleanup(func() { _ = l.Reset(ctx, key) })

	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	for range 2 {
		_, err := l.Hit(ctx, key)
		require.NoError(t, err)
	}

	ok, err = l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Reset(ctx, key))
	ok, _ = l.Allow(ctx, key)
	assert.True(t, ok)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient("http://not-redis")
	require.Error(t, err)
}
