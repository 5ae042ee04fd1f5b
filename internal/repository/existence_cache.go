package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ExistenceChecker reports whether a record with the given identifier exists.
type ExistenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type cachedExistenceChecker struct {
	inner     ExistenceChecker
	cache     *redis.Client
	namespace string
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewCachedExistenceChecker remembers positive lookups in Redis for ttl.
// Misses are never cached. Without a client or a positive ttl the inner checker is returned as is.
func NewCachedExistenceChecker(inner ExistenceChecker, cache *redis.Client, namespace string, ttl time.Duration, logger zerolog.Logger) ExistenceChecker {
	if cache == nil || ttl <= 0 {
		return inner
	}

	return &cachedExistenceChecker{
		inner:     inner,
		cache:     cache,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger.With().Str("component", "existence_cache").Str("namespace", namespace).Logger(),
	}
}

func (c *cachedExistenceChecker) Exists(ctx context.Context, id string) (bool, error) {
	key := c.key(id)

	hits, err := c.cache.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Warn().Err(err).Msg("existence cache read failed")
	} else if hits > 0 {
		return true, nil
	}

	found, err := c.inner.Exists(ctx, id)
	if err != nil || !found {
		return found, err
	}

	if err := c.cache.Set(ctx, key, 1, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("existence cache write failed")
	}

	return true, nil
}

func (c *cachedExistenceChecker) key(id string) string {
	return c.namespace + ":exists:" + id
}
