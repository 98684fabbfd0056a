package logistics

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DistanceCache stores resolved distances. Misses and backend failures both report ok=false.
type DistanceCache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, km float64)
}

type RedisDistanceCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisDistanceCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisDistanceCache {
	return &RedisDistanceCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *RedisDistanceCache) Get(ctx context.Context, key string) (float64, bool) {
	km, err := c.rdb.Get(ctx, key).Float64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Distance cache read failed", zap.String("key", key), zap.Error(err))
		}
		return 0, false
	}
	return km, true
}

func (c *RedisDistanceCache) Set(ctx context.Context, key string, km float64) {
	if err := c.rdb.Set(ctx, key, km, c.ttl).Err(); err != nil {
		c.logger.Warn("Distance cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(origin, destination Coordinates) string {
	return "distance:" + origin.String() + ";" + destination.String()
}
