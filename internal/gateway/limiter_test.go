package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisRateLimiter(t *testing.T) {
	client := setupMiniredis(t)
	limiter := NewRedisRateLimiter(client, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "42")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, err := limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different caller has its own window.
	allowed, err = limiter.Allow(ctx, "43")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryRateLimiter(t *testing.T) {
	limiter := NewMemoryRateLimiter(2, time.Minute)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.False(t, allowed)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestFailoverRateLimiter_FallsBack(t *testing.T) {
	logger := zerolog.Nop()
	fallback := NewMemoryRateLimiter(1, time.Minute)
	limiter := NewFailoverRateLimiter(failingLimiter{}, fallback, &logger)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.True(t, allowed)

	// Still on the fallback; its budget of one is spent.
	allowed, err = limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestFailoverRateLimiter_PrimaryHealthy(t *testing.T) {
	logger := zerolog.Nop()
	client := setupMiniredis(t)
	primary := NewRedisRateLimiter(client, 1, time.Minute)
	fallback := NewMemoryRateLimiter(100, time.Minute)
	limiter := NewFailoverRateLimiter(primary, fallback, &logger)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.False(t, allowed)
}
