package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*RedisBookingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisBookingCache(client, zap.NewNop()), mr
}

func TestGetOrCompute(t *testing.T) {
	ctx := context.Background()

	t.Run("ComputesOnceWithinTTL", func(t *testing.T) {
		c, _ := newTestCache(t)
		calls := 0
		compute := func(ctx context.Context) (interface{}, error) {
			calls++
			return map[string]int{"total": calls}, nil
		}

		first, err := c.GetOrCompute(ctx, "bookings:mine:u1:p1:l10", time.Minute, compute)
		require.NoError(t, err)
		second, err := c.GetOrCompute(ctx, "bookings:mine:u1:p1:l10", time.Minute, compute)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first, second)
	})

	t.Run("RecomputesAfterExpiry", func(t *testing.T) {
		c, mr := newTestCache(t)
		calls := 0
		compute := func(ctx context.Context) (interface{}, error) {
			calls++
			return calls, nil
		}

		_, err := c.GetOrCompute(ctx, "k", time.Second, compute)
		require.NoError(t, err)
		mr.FastForward(2 * time.Second)
		_, err = c.GetOrCompute(ctx, "k", time.Second, compute)
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("CacheDownFallsThroughToCompute", func(t *testing.T) {
		c, mr := newTestCache(t)
		mr.Close()

		data, err := c.GetOrCompute(ctx, "k", time.Minute, func(ctx context.Context) (interface{}, error) {
			return "fresh", nil
		})
		require.NoError(t, err)
		assert.Equal(t, `"fresh"`, string(data))
	})
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	seed := func(key string) {
		_, err := c.GetOrCompute(ctx, key, time.Minute, func(ctx context.Context) (interface{}, error) {
			return key, nil
		})
		require.NoError(t, err)
	}
	seed(MineKey("u1", 1, 10))
	seed(MineKey("u1", 2, 10))
	seed(MineKey("u2", 1, 10))
	seed(AdminKey("bs=|ps=|p=1|l=10"))

	c.Invalidate(ctx, MineScope("u1"), AdminScope())

	calls := 0
	counting := func(ctx context.Context) (interface{}, error) {
		calls++
		return "recomputed", nil
	}
	_, err := c.GetOrCompute(ctx, MineKey("u1", 1, 10), time.Minute, counting)
	require.NoError(t, err)
	_, err = c.GetOrCompute(ctx, MineKey("u1", 2, 10), time.Minute, counting)
	require.NoError(t, err)
	_, err = c.GetOrCompute(ctx, AdminKey("bs=|ps=|p=1|l=10"), time.Minute, counting)
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "invalidated scopes must recompute")

	// u2 entries survive.
	_, err = c.GetOrCompute(ctx, MineKey("u2", 1, 10), time.Minute, counting)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}
