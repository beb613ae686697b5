package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, expiration time.Duration) (*RedisFeedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFeedCache(client, expiration), mr
}

func TestRedisFeedCache_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	e, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, e.Doc)
	assert.Equal(t, int64(0), e.Version)

	stored, err := c.Set(ctx, e.Version, []byte("<rss/>"))
	require.NoError(t, err)
	assert.True(t, stored)

	e, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("<rss/>"), e.Doc)
}

func TestRedisFeedCache_Expiration(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, err := c.Set(ctx, 0, []byte("<rss/>"))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(DefaultFeedKey))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisFeedCache_NoExpiration(t *testing.T) {
	c, mr := newTestCache(t, 0)

	stored, err := c.Set(context.Background(), 0, []byte("<rss/>"))
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, time.Duration(0), mr.TTL(DefaultFeedKey))
}

func TestRedisFeedCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, err := c.Set(ctx, 0, []byte("<rss/>"))
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(DefaultFeedKey))

	e, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), e.Version)

	// invalidating an absent document still bumps the version
	require.NoError(t, c.Invalidate(ctx))
	e, _, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), e.Version)
}

func TestRedisFeedCache_SetAfterInvalidateIsDropped(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	// a renderer reads the version, then a write invalidates before it stores
	e, _, err := c.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))

	stored, err := c.Set(ctx, e.Version, []byte("<rss>old</rss>"))
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists(DefaultFeedKey))

	// a renderer that started after the invalidation may store
	e, _, err = c.Get(ctx)
	require.NoError(t, err)
	stored, err = c.Set(ctx, e.Version, []byte("<rss>new</rss>"))
	require.NoError(t, err)
	assert.True(t, stored)

	e, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<rss>new</rss>", string(e.Doc))
}

func TestRedisFeedCache_BadVersion(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(DefaultVersionKey, "not-a-number"))

	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisFeedCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	assert.Error(t, err)
	assert.False(t, ok)

	stored, err := c.Set(ctx, 0, []byte("<rss/>"))
	assert.Error(t, err)
	assert.False(t, stored)
	assert.Error(t, c.Invalidate(ctx))
}

func TestNoopFeedCache(t *testing.T) {
	var c NoopFeedCache
	ctx := context.Background()

	stored, err := c.Set(ctx, 0, []byte("x"))
	require.NoError(t, err)
	assert.False(t, stored)
	e, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, e.Doc)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestRedisFeedCache_Ping(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
