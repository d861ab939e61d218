package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ViewCache is a best-effort byte cache for schedule projections. Misses and
// backend failures are equivalent: the caller falls through to the database.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// RedisViewCache implements ViewCache on Redis. A Redis outage degrades the
// projector to uncached reads; it never fails a request.
type RedisViewCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

var _ ViewCache = (*RedisViewCache)(nil)

// NewRedisViewCache creates a new RedisViewCache.
func NewRedisViewCache(rdb *redis.Client, log zerolog.Logger) *RedisViewCache {
	return &RedisViewCache{rdb: rdb, log: log}
}

// Get fetches a cached projection.
func (c *RedisViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("view cache read failed")
		return nil, false
	}
	return val, true
}

// Set stores a projection with a TTL.
func (c *RedisViewCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("view cache write failed")
	}
}
