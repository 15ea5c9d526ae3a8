package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisChecker checks Redis connectivity.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Name returns "redis".
func (c *RedisChecker) Name() string {
	return "redis"
}

// Check pings Redis.
func (c *RedisChecker) Check(ctx context.Context) Result {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	return Result{Status: StatusUp}
}
