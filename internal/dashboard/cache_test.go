package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCacheWithClient(client, "", ttl)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestRedisCache_SetGetInvalidate(t *testing.T) {
	cache, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "ACME")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "ACME", "<div>a</div>"))
	require.NoError(t, cache.Set(ctx, "Globex", "<div>g</div>"))
	assert.True(t, mr.Exists(DefaultKeyPrefix+"ACME"))

	html, ok, err := cache.Get(ctx, "ACME")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<div>a</div>", html)

	require.NoError(t, cache.Invalidate(ctx, "ACME", ""))
	_, ok, err = cache.Get(ctx, "ACME")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.Get(ctx, "Globex")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCache_Expires(t *testing.T) {
	cache, mr := setupTestRedis(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ACME", "x"))
	assert.Equal(t, 30*time.Second, mr.TTL(DefaultKeyPrefix+"ACME"))

	mr.FastForward(31 * time.Second)
	_, ok, err := cache.Get(ctx, "ACME")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_InvalidateNothing(t *testing.T) {
	cache, _ := setupTestRedis(t, 0)
	assert.NoError(t, cache.Invalidate(context.Background()))
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Set(context.Background(), "c", "v"))
	assert.True(t, mr.Exists("test:c"))
}

func TestNewRedisCache_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}

func TestNoopCache(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ACME", "x"))
	_, ok, err := c.Get(ctx, "ACME")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx, "ACME"))
}
