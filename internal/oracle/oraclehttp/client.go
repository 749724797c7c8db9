// Package oraclehttp is the HTTP adapter for the semantic-equivalence
// oracle. Calls are bounded by a hard timeout; callers fail open on error.
package oraclehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"docaudit/internal/oracle"
	"docaudit/internal/oracle/metrics"
)

// Client calls a remote equivalence service over HTTP.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	metrics *metrics.Metrics
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New constructs a client for the service at url. Every request is bounded
// by timeout regardless of the caller's context.
func New(url string, timeout time.Duration, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("oracle URL is required")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("oracle timeout must be positive")
	}
	c := &Client{url: url, timeout: timeout, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type request struct {
	ValueA    string `json:"valueA"`
	ValueB    string `json:"valueB"`
	FieldType string `json:"fieldType"`
}

// Equivalent implements oracle.Oracle.
func (c *Client) Equivalent(ctx context.Context, a, b, fieldType string) (*oracle.Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(request{ValueA: a, ValueB: b, FieldType: fieldType})
	if err != nil {
		return nil, fmt.Errorf("encode oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.observe(metrics.OutcomeTimeout)
		} else {
			c.observe(metrics.OutcomeError)
		}
		return nil, fmt.Errorf("call oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var verdict oracle.Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		c.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("decode oracle response: %w", err)
	}
	c.observe(metrics.OutcomeOK)
	return &verdict, nil
}

func (c *Client) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(outcome)
	}
}
