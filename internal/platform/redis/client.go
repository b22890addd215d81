// Package redis owns the shared cache connection. Components that need the
// operator-configured cache lifetime read it off the client instead of
// threading the config struct through their constructors.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"imexspec/internal/platform/config"
	dErrors "imexspec/pkg/domain-errors"
)

// Client is the handle on the cache connection. CacheTTL travels with it so
// cache layers inherit one lifetime per deployment.
type Client struct {
	*redis.Client

	CacheTTL time.Duration
}

// New dials the cache from cfg and verifies the connection before handing it
// out. A missing URL means the cache is disabled, not misconfigured, so it
// yields (nil, nil).
func New(ctx context.Context, cfg config.Redis) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "cache unreachable", err)
	}

	return &Client{Client: client, CacheTTL: cfg.CacheTTL}, nil
}

// Health reports whether the connection still answers.
func (c *Client) Health(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "cache unreachable", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}
