// Package ratelimit implements a fixed-window request limiter backed by
// Redis, so the limit is shared across all service instances.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts actions per actor within a fixed window.
type Limiter struct {
	redis  *redis.Client
	window time.Duration
}

func New(client *redis.Client, window time.Duration) *Limiter {
	return &Limiter{redis: client, window: window}
}

// Allow increments the counter for actor+action and reports whether the call
// is within limit. The first increment of a window sets the TTL. On Redis
// failure the request is allowed: rate limiting is protective, not
// load-bearing.
func (l *Limiter) Allow(ctx context.Context, actor, action string, limit int64) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", actor, action)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return true, fmt.Errorf("expire %s: %w", key, err)
		}
	}

	return count <= limit, nil
}
