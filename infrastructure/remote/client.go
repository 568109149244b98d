package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopping-api/infrastructure/persistence"
	"shopping-api/pkg/logger"
	"shopping-api/pkg/metrics"

	"go.uber.org/zap"
)

const (
	DefaultTimeout = 3 * time.Second

	maxBodyBytes = 1 << 20

	requestIDHeader = "X-Request-ID"
)

// Config is fixed at construction and never mutated.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Option customises a client.
type Option func(*client)

// WithHTTPClient replaces the underlying *http.Client, timeout included.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.http = hc }
}

// WithMetrics records every lookup on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *client) { c.metrics = m }
}

type client struct {
	service string
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

func newClient(service string, cfg Config, opts ...Option) *client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &client{
		service: service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs GET {baseURL}/{collection}/{key} and decodes a 2xx body into T.
func get[T any](ctx context.Context, c *client, collection, key string) Result[T] {
	start := time.Now()

	var res Result[T]
	body, status, outcome, err := c.fetch(ctx, collection, key)
	res.Outcome, res.StatusCode, res.Err = outcome, status, err
	if outcome == Found {
		if err := json.Unmarshal(body, &res.Value); err != nil {
			res.Outcome = ServerError
			res.Err = fmt.Errorf("decode %s response: %w", c.service, err)
		}
	}

	elapsed := time.Since(start)
	c.metrics.ObserveLookup(c.service, res.Outcome.String(), elapsed)

	log := logger.FromContext(ctx).With(
		zap.String("service", c.service),
		zap.String("key", key),
		zap.String("outcome", res.Outcome.String()),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", elapsed),
	)
	if res.Outcome == Found || res.Outcome == NotFound {
		log.Debug("Remote lookup")
	} else {
		log.Warn("Remote lookup failed", zap.Error(res.Err))
	}
	return res
}

func (c *client) fetch(ctx context.Context, collection, key string) ([]byte, int, Outcome, error) {
	endpoint := c.baseURL + "/" + collection + "/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, TransportError, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, TransportError, fmt.Errorf("%s %s: %w", c.service, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, TransportError, fmt.Errorf("read %s response: %w", c.service, err)
	}

	outcome := classifyStatus(resp.StatusCode)
	if outcome != Found {
		return nil, resp.StatusCode, outcome, fmt.Errorf("%s responded %d", c.service, resp.StatusCode)
	}
	return body, resp.StatusCode, Found, nil
}
