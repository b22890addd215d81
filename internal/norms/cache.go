package norms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	platformredis "imexspec/internal/platform/redis"
)

const activePackKey = "imexspec:normpack:active"

// CachedStore is a read-through cache in front of a norm pack store. The
// resolver re-reads the pack on every request, so a shared cache keeps the
// hot path off the database. Cache failures fall through to the inner store;
// a degraded cache must never block resolution.
type CachedStore struct {
	inner  Store
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger

	metrics *Metrics
}

// NewCachedStore wraps inner with a redis read-through cache.
func NewCachedStore(inner Store, client *platformredis.Client, ttl time.Duration, logger *slog.Logger, m *Metrics) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger, metrics: m}
}

func (c *CachedStore) ActivePack(ctx context.Context) (Pack, error) {
	cached, err := c.client.Get(ctx, activePackKey).Bytes()
	if err == nil {
		var pack Pack
		if err := json.Unmarshal(cached, &pack); err == nil {
			c.metrics.CacheHit()
			return pack, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		_ = c.client.Del(ctx, activePackKey).Err()
	} else if !errors.Is(err, goredis.Nil) {
		c.logger.WarnContext(ctx, "norm pack cache read failed", "error", err.Error())
	}
	c.metrics.CacheMiss()

	pack, err := c.inner.ActivePack(ctx)
	if err != nil {
		return Pack{}, err
	}

	if doc, err := json.Marshal(pack); err == nil {
		if err := c.client.Set(ctx, activePackKey, doc, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "norm pack cache write failed", "error", err.Error())
		}
	}
	return pack, nil
}

// Invalidate drops the cached pack. Called when a new pack version is
// activated so the next resolution reads the fresh document.
func (c *CachedStore) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activePackKey).Err(); err != nil {
		return fmt.Errorf("invalidate norm pack cache: %w", err)
	}
	return nil
}
