package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"reels/dto"
)

const versionKey = "feed:version"

// FeedCache caches public feed pages. Invalidate must make every cached page
// unreachable.
type FeedCache interface {
	Get(ctx context.Context, page int) (*dto.FeedPage, bool)
	Set(ctx context.Context, page int, fp *dto.FeedPage)
	Invalidate(ctx context.Context)
}

// Nop is used when no cache is configured.
type Nop struct{}

func (Nop) Get(context.Context, int) (*dto.FeedPage, bool) { return nil, false }
func (Nop) Set(context.Context, int, *dto.FeedPage)        {}
func (Nop) Invalidate(context.Context)                     {}

// RedisFeedCache stores pages under a versioned key. Invalidation bumps the
// version instead of scanning for keys; stale pages expire by TTL.
type RedisFeedCache struct {
	rdb *redis.Client
	ttl time.Duration
	// OnError observes cache failures, which never fail a request.
	OnError func(op string, err error)
}

func NewRedisFeedCache(rdb *redis.Client, ttl time.Duration) *RedisFeedCache {
	return &RedisFeedCache{rdb: rdb, ttl: ttl, OnError: func(string, error) {}}
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func pageKey(version int64, page int) string {
	return fmt.Sprintf("feed:v%d:page:%d", version, page)
}

func (c *RedisFeedCache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisFeedCache) Get(ctx context.Context, page int) (*dto.FeedPage, bool) {
	v, err := c.version(ctx)
	if err != nil {
		c.OnError("version", err)
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, pageKey(v, page)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.OnError("get", err)
		}
		return nil, false
	}
	var fp dto.FeedPage
	if err := json.Unmarshal(raw, &fp); err != nil {
		c.OnError("decode", err)
		return nil, false
	}
	return &fp, true
}

func (c *RedisFeedCache) Set(ctx context.Context, page int, fp *dto.FeedPage) {
	v, err := c.version(ctx)
	if err != nil {
		c.OnError("version", err)
		return
	}
	raw, err := json.Marshal(fp)
	if err != nil {
		c.OnError("encode", err)
		return
	}
	if err := c.rdb.Set(ctx, pageKey(v, page), raw, c.ttl).Err(); err != nil {
		c.OnError("set", err)
	}
}

func (c *RedisFeedCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		c.OnError("invalidate", err)
	}
}
