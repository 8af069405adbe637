// Package client provides the HTTP client for the upstream rates backend.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"knowallrates-gateway/internal/config"
	"knowallrates-gateway/internal/metrics"
	"knowallrates-gateway/internal/model"
)

// BackendClient sends requests to the upstream rates backend.
type BackendClient struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewBackendClient creates a BackendClient with connection pooling, timeouts
// and an optional circuit breaker. The metrics parameter is optional; pass
// nil to disable backend metrics recording.
func NewBackendClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *BackendClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Backend.IdleConnections,
		MaxIdleConnsPerHost: cfg.Backend.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	c := &BackendClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "backend_client"),
		metrics: m,
	}

	if !cfg.Backend.Breaker.Disabled {
		c.breaker = newBreaker(cfg.Backend.Breaker, c.logger)
	}

	return c
}

// newBreaker builds a failure-ratio circuit breaker: it trips after
// min_requests calls with at least half of them failing, then rejects
// calls outright for the cooldown period.
func newBreaker(cfg config.BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker {
	minRequests := uint32(cfg.MinRequests) //nolint:gosec // validated non-negative at config load

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "backend",
		Interval: time.Duration(cfg.CooldownSeconds) * time.Second,
		Timeout:  time.Duration(cfg.CooldownSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// Do executes an HTTP request against the backend and returns the raw response.
// The caller is responsible for closing the response body. Only transport
// failures count against the circuit breaker; a 4xx/5xx backend response is a
// delivered answer, not a breaker failure.
func (c *BackendClient) Do(req *http.Request) (*model.ProxyResponse, error) {
	if c.breaker == nil {
		return c.do(req)
	}

	resp, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(req)
	})
	if err != nil {
		return nil, err
	}
	return resp.(*model.ProxyResponse), nil
}

func (c *BackendClient) do(req *http.Request) (*model.ProxyResponse, error) {
	c.logger.Debug("backend request",
		"method", req.Method,
		"path", req.URL.Path,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:bodyclose // body ownership transfers to caller via ProxyResponse
	duration := time.Since(start).Seconds()

	method := metrics.NormalizeMethod(req.Method)

	if err != nil {
		if c.metrics != nil {
			c.metrics.BackendDuration.WithLabelValues(method).Observe(duration)
		}
		return nil, fmt.Errorf("backend request: %w", err)
	}

	if c.metrics != nil {
		status := strconv.Itoa(resp.StatusCode)
		c.metrics.BackendDuration.WithLabelValues(method).Observe(duration)
		c.metrics.BackendResponses.WithLabelValues(method, status).Inc()
	}

	return &model.ProxyResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// DoStream executes a request and returns the response body as a stream.
// The caller is responsible for closing the returned body. The provided
// context controls the lifetime of the backend request: when the context is
// canceled (e.g. client disconnects), the backend request is also canceled.
func (c *BackendClient) DoStream(ctx context.Context, method, url string, header http.Header, body io.Reader) (*model.ProxyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}
	req.Header = header

	return c.Do(req)
}
