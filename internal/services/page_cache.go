package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/focodev/site/backend/internal/config"
	"github.com/focodev/site/backend/internal/logger"
)

// PageCacheTTL bounds how stale a cached public page can get when an
// invalidation is missed.
const PageCacheTTL = 10 * time.Minute

// PageCache stores rendered public responses by path. Implementations never
// surface errors to callers.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, keys ...string)
}

// NewPageCache returns a Redis-backed cache when an address is configured
// and a no-op cache otherwise.
func NewPageCache(cfg config.RedisConfig) PageCache {
	if cfg.Addr == "" {
		return NoopPageCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisPageCache(client, PageCacheTTL)
}

type NoopPageCache struct{}

func (NoopPageCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NoopPageCache) Set(context.Context, string, []byte)        {}
func (NoopPageCache) Invalidate(context.Context, ...string)      {}

type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPageCache(client *redis.Client, ttl time.Duration) *RedisPageCache {
	return &RedisPageCache{client: client, ttl: ttl}
}

func pageKey(path string) string {
	return "focodev:page:" + path
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, pageKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log().WithError(err).WithField("key", key).Warn("page cache read failed")
		}
		return nil, false
	}
	return val, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, pageKey(key), value, c.ttl).Err(); err != nil {
		logger.Log().WithError(err).WithField("key", key).Warn("page cache write failed")
	}
}

func (c *RedisPageCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = pageKey(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		logger.Log().WithError(err).WithField("keys", keys).Warn("page cache invalidation failed")
	}
}
