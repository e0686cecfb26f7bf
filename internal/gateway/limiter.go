package gateway

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"shareit/internal/config"
)

// RateLimiter answers whether a caller may make another request inside the
// current window.
type RateLimiter interface {
	Allow(ctx context.Context, callerKey string) (bool, error)
}

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RedisRateLimiter counts requests per caller in Redis with a fixed window.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, callerKey string) (bool, error) {
	if l.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("rate_limit:%s", callerKey)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}
	return count <= int64(l.limit), nil
}

// MemoryRateLimiter keeps a token bucket per caller in process memory. It is
// the fallback when Redis is unreachable.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    int
	window   time.Duration
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		window:   window,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, callerKey string) (bool, error) {
	l.mu.Lock()
	limiter, ok := l.limiters[callerKey]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit)
		l.limiters[callerKey] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow(), nil
}

// FailoverRateLimiter prefers the primary limiter and falls back to the
// secondary when the primary errors, retrying the primary after a minute.
type FailoverRateLimiter struct {
	primary   RateLimiter
	fallback  RateLimiter
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverRateLimiter(primary, fallback RateLimiter, logger *zerolog.Logger) *FailoverRateLimiter {
	return &FailoverRateLimiter{primary: primary, fallback: fallback, logger: logger}
}

func (l *FailoverRateLimiter) Allow(ctx context.Context, callerKey string) (bool, error) {
	if !l.isDown.Load() {
		allowed, err := l.primary.Allow(ctx, callerKey)
		if err == nil {
			return allowed, nil
		}
		l.logger.Error().Err(err).Msg("primary rate limiter failed, falling back to memory")
		l.isDown.Store(true)
		l.lastCheck.Store(time.Now().UnixNano())
	}

	if l.isDown.Load() && time.Since(time.Unix(0, l.lastCheck.Load())) > time.Minute {
		allowed, err := l.primary.Allow(ctx, callerKey)
		if err == nil {
			l.isDown.Store(false)
			return allowed, nil
		}
		l.lastCheck.Store(time.Now().UnixNano())
	}

	return l.fallback.Allow(ctx, callerKey)
}
