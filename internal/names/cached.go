package names

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache stores JSON values by key; utils.RedisCache satisfies it
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cached remembers non-empty results per count
type Cached struct {
	next  Suggester
	cache Cache
	ttl   time.Duration
}

// NewCached wraps next with cache
func NewCached(next Suggester, cache Cache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl}
}

// Suggest serves from the cache when possible. Cache errors fall through to next.
func (c *Cached) Suggest(ctx context.Context, count int) []string {
	if count <= 0 {
		return []string{}
	}
	key := strconv.Itoa(count)
	var hit []string
	found, err := c.cache.Get(ctx, key, &hit)
	if err != nil {
		logrus.WithError(err).Warn("Name cache read failed")
	} else if found {
		return hit
	}

	names := c.next.Suggest(ctx, count)
	if len(names) == 0 {
		return names // Errors are not cached
	}
	if err := c.cache.Set(ctx, key, names, c.ttl); err != nil {
		logrus.WithError(err).Warn("Name cache write failed")
	}
	return names
}

// Refresh drops the cached list for count and asks next for a new one.
func (c *Cached) Refresh(ctx context.Context, count int) []string {
	if count > 0 {
		if err := c.cache.Delete(ctx, strconv.Itoa(count)); err != nil {
			logrus.WithError(err).Warn("Name cache delete failed")
		}
	}
	return c.Suggest(ctx, count)
}
