package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCacheFromClient(client), mr
}

type payload struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestSetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "area", payload{Name: "Main Street", Score: 88}, time.Minute))
	assert.True(t, mr.Exists("sakhi:area"))

	var got payload
	require.NoError(t, cache.Get(ctx, "area", &got))
	assert.Equal(t, payload{Name: "Main Street", Score: 88}, got)

	mr.FastForward(2 * time.Minute)
	err := cache.Get(ctx, "area", &got)
	assert.True(t, IsMiss(err))
}

func TestGetOrSet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	build := func() (payload, error) {
		calls++
		return payload{Name: "Park Avenue", Score: 85}, nil
	}

	first, err := GetOrSet(ctx, cache, "report", time.Minute, build)
	require.NoError(t, err)
	second, err := GetOrSet(ctx, cache, "report", time.Minute, build)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrSetWithoutCache(t *testing.T) {
	boom := errors.New("boom")
	_, err := GetOrSet(context.Background(), nil, "k", time.Minute, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestDeleteAndTouch(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "s", 1, time.Second))
	require.NoError(t, cache.Touch(ctx, "s", time.Hour))
	mr.FastForward(time.Minute)
	assert.True(t, mr.Exists("sakhi:s"))

	require.NoError(t, cache.Delete(ctx, "s"))
	assert.False(t, mr.Exists("sakhi:s"))
}
