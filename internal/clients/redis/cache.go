package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stratahub/strata-portal/internal/platform/envutil"
	"github.com/stratahub/strata-portal/internal/platform/logger"
)

// NewClient connects to Redis when REDIS_ADDR is set. A nil return disables
// caching portal-wide; every consumer treats the cache as optional.
func NewClient(ctx context.Context, log *logger.Logger) *redis.Client {
	addr := envutil.GetEnv("REDIS_ADDR", "", log)
	if addr == "" {
		log.Info("REDIS_ADDR not set, response caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envutil.GetEnv("REDIS_PASSWORD", "", log),
		DB:       envutil.GetEnvAsInt("REDIS_DB", 0, log),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis ping failed, response caching disabled", "error", err)
		return nil
	}
	return client
}

// ListCache memoizes serialized list responses per model and query string.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewListCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *ListCache {
	if rdb == nil {
		return nil
	}
	return &ListCache{rdb: rdb, ttl: ttl, log: log.With("cache", "ListCache")}
}

func (lc *ListCache) key(slug, rawQuery string) string {
	return "strata:list:" + slug + ":" + rawQuery
}

func (lc *ListCache) Get(ctx context.Context, slug, rawQuery string) ([]byte, bool) {
	if lc == nil {
		return nil, false
	}
	payload, err := lc.rdb.Get(ctx, lc.key(slug, rawQuery)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (lc *ListCache) Set(ctx context.Context, slug, rawQuery string, payload []byte) {
	if lc == nil {
		return
	}
	if err := lc.rdb.Set(ctx, lc.key(slug, rawQuery), payload, lc.ttl).Err(); err != nil {
		lc.log.Warn("Failed to cache list response", "slug", slug, "error", err)
	}
}

// Invalidate drops every cached listing of one model after a write.
func (lc *ListCache) Invalidate(ctx context.Context, slug string) {
	if lc == nil {
		return
	}
	pattern := "strata:list:" + slug + ":*"
	iter := lc.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := lc.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			lc.log.Warn("Failed to invalidate cache key", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		lc.log.Warn("Cache invalidation scan failed", "slug", slug, "error", err)
	}
}
