package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"knowallrates-gateway/internal/fallback"
	"knowallrates-gateway/internal/metrics"
	"knowallrates-gateway/internal/service"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

// RateHandler relays the market-data read endpoints. These degrade instead
// of failing: any transport error or non-2xx backend response is replaced by
// a synthetic 200 payload marked with X-Data-Source so the dashboard always
// has numbers to render.
type RateHandler struct {
	relay
	gen     *fallback.Generator
	metrics *metrics.Metrics
}

// NewRateHandler creates a RateHandler. The metrics parameter is optional.
func NewRateHandler(svc *service.ProxyService, gen *fallback.Generator, m *metrics.Metrics, logger *slog.Logger) *RateHandler {
	return &RateHandler{
		relay: relay{
			svc:    svc,
			logger: logger.With("component", "rate_handler"),
		},
		gen:     gen,
		metrics: m,
	}
}

// Today serves GET /api/rate/today.
func (h *RateHandler) Today(c echo.Context) error {
	return h.serve(c, "today", "/api/rate/today", nil, func() any { return h.gen.Today() })
}

// History serves GET /api/rate/history?days=N. The fallback series contains
// exactly the requested number of points, oldest first.
func (h *RateHandler) History(c echo.Context) error {
	days := parseDays(c.QueryParam("days"))
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	return h.serve(c, "history", "/api/rate/history", query, func() any { return h.gen.History(days) })
}

// Predict serves GET /api/rate/predict.
func (h *RateHandler) Predict(c echo.Context) error {
	return h.serve(c, "predict", "/api/rate/predict", nil, func() any { return h.gen.Prediction() })
}

// Health relays GET /api/rate/health without the fallback policy.
func (h *RateHandler) Health(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/rate/health", cors: true})
}

func (h *RateHandler) serve(c echo.Context, endpoint, path string, query url.Values, synth func() any) error {
	resp, err := h.forward(c, relayOpts{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return h.fallback(c, endpoint, err.Error(), synth())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return h.fallback(c, endpoint, backendErrorMessage(resp), synth())
	}

	setCORSHeaders(c.Response().Header())
	return relayBody(c, resp, h.logger)
}

// fallback returns a synthetic 200 with diagnostic markers. It never errors.
func (h *RateHandler) fallback(c echo.Context, endpoint, trigger string, payload any) error {
	h.logger.Warn("serving synthetic fallback data",
		"endpoint", endpoint,
		"trigger", trigger,
	)
	if h.metrics != nil {
		h.metrics.FallbackResponses.WithLabelValues(endpoint).Inc()
	}

	hdr := c.Response().Header()
	setCORSHeaders(hdr)
	hdr.Set(HeaderDataSource, "mock-fallback")
	hdr.Set(HeaderError, headerValue(trigger))

	return c.JSON(http.StatusOK, payload)
}

// parseDays clamps the requested history window to [1, maxHistoryDays],
// defaulting when the parameter is absent or malformed.
func parseDays(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return defaultHistoryDays
	}
	if days > maxHistoryDays {
		return maxHistoryDays
	}
	return days
}
