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

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	cache := NewRedisCache(rdb, "names:")

	var got []string
	ok, err := cache.Get(ctx, "5", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "5", []string{"สมชาย ใจดี"}, time.Minute))
	assert.True(t, mr.Exists("names:5"))

	ok, err = cache.Get(ctx, "5", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"สมชาย ใจดี"}, got)

	mr.FastForward(2 * time.Minute)
	ok, err = cache.Get(ctx, "5", &got)
	require.NoError(t, err)
	assert.False(t, ok, "expired after ttl")

	require.NoError(t, cache.Set(ctx, "3", []string{"a"}, time.Minute))
	require.NoError(t, cache.Delete(ctx, "3"))
	assert.False(t, mr.Exists("names:3"))
}
