// Package cache provides the read-through cache used by booking list views.
// The cache is a latency shield, never a source of truth: every error path
// degrades to computing fresh data.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ComputeFunc produces the value for a cache miss.
type ComputeFunc func(ctx context.Context) (interface{}, error)

// BookingCache is the capability the booking service depends on. Scopes are
// key prefixes; invalidating a scope removes every entry under it.
type BookingCache interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)
	Invalidate(ctx context.Context, scopes ...string)
}

// RedisBookingCache implements BookingCache on a shared Redis client.
type RedisBookingCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBookingCache(client *redis.Client, logger *zap.Logger) *RedisBookingCache {
	return &RedisBookingCache{client: client, logger: logger}
}

// GetOrCompute returns the cached JSON for key, or runs compute, stores the
// result and returns it. Cache failures are logged and absorbed; a compute
// failure is the only error surfaced.
func (c *RedisBookingCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
		return cached, nil
	} else if err != redis.Nil {
		c.logger.Warn("cache read failed, computing fresh", zap.String("key", key), zap.Error(err))
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

// Invalidate removes every key under each scope prefix. Errors are logged
// only; a missed invalidation is healed by the TTL.
func (c *RedisBookingCache) Invalidate(ctx context.Context, scopes ...string) {
	for _, scope := range scopes {
		iter := c.client.Scan(ctx, 0, scope+"*", 0).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			c.logger.Warn("cache scan failed", zap.String("scope", scope), zap.Error(err))
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("cache invalidation failed", zap.String("scope", scope), zap.Error(err))
		}
	}
}
