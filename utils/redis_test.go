package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) {
	t.Helper()

	srv := miniredis.RunT(t)
	RedisClient = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { RedisClient = nil })
}

func TestCacheRoundTrip(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	key := GenerateQueryCacheKey("listings:search", map[string]string{"category": "beach"})

	var out []string
	hit, err := GetCached(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetCached(ctx, key, []string{"a", "b"}, time.Minute))

	hit, err = GetCached(ctx, key, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestInvalidatePrefix(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	k1 := GenerateQueryCacheKey("listings:search", map[string]string{"category": "beach"})
	k2 := GenerateQueryCacheKey("listings:search", map[string]string{"category": "cabin"})
	require.NoError(t, SetCached(ctx, k1, "x", time.Minute))
	require.NoError(t, SetCached(ctx, k2, "y", time.Minute))
	require.NoError(t, SetCached(ctx, "other:key", "z", time.Minute))

	require.NoError(t, InvalidatePrefix(ctx, "listings:search"))

	var s string
	hit, err := GetCached(ctx, k1, &s)
	require.NoError(t, err)
	assert.False(t, hit, "purged key must miss")

	hit, err = GetCached(ctx, k2, &s)
	require.NoError(t, err)
	assert.False(t, hit, "purged key must miss")

	// Keys outside the prefix survive.
	hit, err = GetCached(ctx, "other:key", &s)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "z", s)
}
