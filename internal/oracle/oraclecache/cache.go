// Package oraclecache memoizes oracle verdicts in Redis. Caching only ever
// replays an earlier verdict for the identical pair, so it cannot change any
// comparison result; cache failures fall through to the inner oracle.
package oraclecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"docaudit/internal/oracle"
	"docaudit/internal/oracle/metrics"
)

// Backend is the slice of the Redis client the cache needs. Kept narrow so
// unit tests can supply an in-memory fake.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ErrCacheMiss is returned by Backend.Get when the key is absent.
var ErrCacheMiss = fmt.Errorf("oracle cache miss")

// Cache decorates an Oracle with verdict memoization.
type Cache struct {
	inner   oracle.Oracle
	backend Backend
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Cache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// New wraps inner with a verdict cache.
func New(inner oracle.Oracle, backend Backend, ttl time.Duration, opts ...Option) (*Cache, error) {
	if inner == nil {
		return nil, fmt.Errorf("inner oracle is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("cache backend is required")
	}
	c := &Cache{inner: inner, backend: backend, ttl: ttl, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Equivalent implements oracle.Oracle.
func (c *Cache) Equivalent(ctx context.Context, a, b, fieldType string) (*oracle.Verdict, error) {
	key := cacheKey(a, b, fieldType)

	if raw, err := c.backend.Get(ctx, key); err == nil {
		var verdict oracle.Verdict
		if err := json.Unmarshal([]byte(raw), &verdict); err == nil {
			if c.metrics != nil {
				c.metrics.IncrementCacheHit()
			}
			return &verdict, nil
		}
		c.logger.WarnContext(ctx, "oracle cache entry corrupt, refetching", "key", key)
	} else if err != ErrCacheMiss {
		c.logger.WarnContext(ctx, "oracle cache read failed", "error", err)
	}

	verdict, err := c.inner.Equivalent(ctx, a, b, fieldType)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(verdict); err == nil {
		if err := c.backend.Set(ctx, key, string(raw), c.ttl); err != nil {
			c.logger.WarnContext(ctx, "oracle cache write failed", "error", err)
		}
	}
	return verdict, nil
}

// cacheKey is order-insensitive in (a, b) so a cached verdict serves both
// orientations of a pair, preserving comparator symmetry.
func cacheKey(a, b, fieldType string) string {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	sum := sha256.Sum256([]byte(fieldType + "\x00" + lo + "\x00" + hi))
	return "docaudit:oracle:v1:" + hex.EncodeToString(sum[:])
}
