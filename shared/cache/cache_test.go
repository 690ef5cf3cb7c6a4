package cache_test

import (
	"context"
	"fleetdesk/infras/otel/mocks"
	"fleetdesk/shared/cache"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

type snapshot struct {
	Plate string `json:"plate"`
	Trips int    `json:"trips"`
}

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	redisCache, server := newCache(t)

	require.NoError(t, redisCache.Save(ctx, "vehicle:get:1", snapshot{Plate: "B 1234 XY", Trips: 4}, 60))
	require.NoError(t, redisCache.Save(ctx, "raw", "plain", 60))

	var got snapshot
	require.NoError(t, redisCache.Get(ctx, "vehicle:get:1", &got))
	assert.Equal(t, snapshot{Plate: "B 1234 XY", Trips: 4}, got)

	var raw string
	require.NoError(t, redisCache.Get(ctx, "raw", &raw))
	assert.Equal(t, "plain", raw)

	assert.Equal(t, 60*time.Second, server.TTL("raw"))

	err := redisCache.Get(ctx, "missing", &raw)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	redisCache, server := newCache(t)

	for i := range 250 {
		require.NoError(t, server.Set(fmt.Sprintf("booking:gets:%d", i), "x"))
	}

	require.NoError(t, server.Set("booking:get:1", "keep"))

	require.NoError(t, redisCache.Clear(ctx, "booking:gets*"))

	assert.Equal(t, []string{"booking:get:1"}, server.Keys())
}

func TestIncr(t *testing.T) {
	ctx := context.Background()
	redisCache, server := newCache(t)

	count, err := redisCache.Incr(ctx, "rate:1.2.3.4", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	server.FastForward(30 * time.Second)

	count, err = redisCache.Incr(ctx, "rate:1.2.3.4", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 30*time.Second, server.TTL("rate:1.2.3.4"))
}
