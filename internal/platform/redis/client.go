// Package redis owns the connection to the Redis instance that backs the
// oracle verdict cache. Redis is optional; when it is absent every
// equivalence question goes straight to the oracle.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"docaudit/internal/platform/config"
)

// Client wraps the go-redis client so callers can health-check the verdict
// cache without knowing the driver.
type Client struct {
	*redis.Client
}

// New creates a Redis client from the verdict-cache configuration.
// Returns nil if the URL is empty (cache disabled).
func New(cfg config.RedisConfig) (*Client, error) {
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

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health checks if the verdict cache connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.Client.Close()
}
