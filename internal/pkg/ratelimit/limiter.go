package ratelimit

import (
	"context"
	"fmt"
	"time"

	"communityhub-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Limiter bounds how often a keyed caller may perform an action. Injected
// rather than kept as process-global counters so a multi-instance deployment
// shares one window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter implements a fixed one-minute window on Redis INCR + EXPIRE.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	logger logger.ILogger
}

func NewRedisLimiter(client *redis.Client, prefix string, limitPerMinute int, log logger.ILogger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limitPerMinute,
		logger: log,
	}
}

// WindowKey computes the storage key for a caller at a given instant.
// Exported for tests.
func (l *RedisLimiter) WindowKey(key string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, now.Unix()/60)
}

// Allow counts the call and reports whether the caller is still under the
// window limit. Redis being unreachable fails open: chat availability beats
// strict limiting, and the outage is logged.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	windowKey := l.WindowKey(key, time.Now())
	count, err := l.client.Incr(ctx, windowKey).Result()
	if err != nil {
		l.logger.Warn("ratelimit", "redis unavailable, failing open", map[string]interface{}{
			"error": err.Error(),
		})
		return true, nil
	}
	if count == 1 {
		l.client.Expire(ctx, windowKey, 2*time.Minute)
	}
	return count <= int64(l.limit), nil
}
