// Package cache stores the rendered RSS document between requests.
package cache

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/set_feed.lua
	luaSetFeed string
	//go:embed lua/invalidate_feed.lua
	luaInvalidateFeed string
)

const (
	// DefaultFeedKey is the Redis key holding the rendered feed.
	DefaultFeedKey = "newshub:rss:feed"
	// DefaultVersionKey counts invalidations; it never expires.
	DefaultVersionKey = "newshub:rss:version"
)

// Entry is a cache read. Version is the invalidation count seen by the read and
// is reported on a miss too, so a later Set can tell whether it is still current.
type Entry struct {
	Doc     []byte
	Version int64
}

// RedisFeedCache keeps the rendered feed under a single key with an expiration,
// guarded by a version counter that Invalidate bumps.
type RedisFeedCache struct {
	client     redis.Cmdable
	key        string
	versionKey string
	expiration time.Duration
}

// NewRedisFeedCache creates a RedisFeedCache.
func NewRedisFeedCache(client redis.Cmdable, expiration time.Duration) *RedisFeedCache {
	return &RedisFeedCache{
		client:     client,
		key:        DefaultFeedKey,
		versionKey: DefaultVersionKey,
		expiration: expiration,
	}
}

// Get reads the document and the version in one round trip. A miss is
// reported with ok=false and no error.
func (c *RedisFeedCache) Get(ctx context.Context) (Entry, bool, error) {
	vals, err := c.client.MGet(ctx, c.key, c.versionKey).Result()
	if err != nil {
		return Entry{}, false, err
	}

	var e Entry
	if v, ok := vals[1].(string); ok {
		e.Version, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Entry{}, false, fmt.Errorf("parse feed version %q: %w", v, err)
		}
	}
	doc, ok := vals[0].(string)
	if !ok {
		return e, false, nil
	}
	e.Doc = []byte(doc)
	return e, true, nil
}

// Set stores doc only if no invalidation happened since the read that returned
// version. It reports whether the document was stored.
func (c *RedisFeedCache) Set(ctx context.Context, version int64, doc []byte) (bool, error) {
	res, err := c.client.Eval(ctx, luaSetFeed, []string{c.key, c.versionKey},
		strconv.FormatInt(version, 10), doc, c.expiration.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Invalidate drops the document and bumps the version in one step.
func (c *RedisFeedCache) Invalidate(ctx context.Context) error {
	return c.client.Eval(ctx, luaInvalidateFeed, []string{c.key, c.versionKey}).Err()
}

// Ping checks that Redis is reachable.
func (c *RedisFeedCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// NoopFeedCache never stores anything.
type NoopFeedCache struct{}

func (NoopFeedCache) Get(context.Context) (Entry, bool, error)          { return Entry{}, false, nil }
func (NoopFeedCache) Set(context.Context, int64, []byte) (bool, error) { return false, nil }
func (NoopFeedCache) Invalidate(context.Context) error                  { return nil }
