package cache

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"wrld-names.backend/pkg/logger"
)

// redisRecordCache backs the resolver's record cache with Redis. Every
// failure degrades to a miss so resolution never depends on Redis health.
type redisRecordCache struct {
	client *goredis.Client
}

// NewRedisRecordCache creates a record cache on the given Redis client
func NewRedisRecordCache(client *goredis.Client) *redisRecordCache {
	return &redisRecordCache{client: client}
}

func (c *redisRecordCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != goredis.Nil {
			logger.Warn(ctx, "record cache get failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (c *redisRecordCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn(ctx, "record cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisRecordCache) Del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx, "record cache del failed", zap.Error(err))
	}
}
