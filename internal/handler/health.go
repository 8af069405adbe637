package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"knowallrates-gateway/internal/config"
	"knowallrates-gateway/internal/model"
	"knowallrates-gateway/internal/service"
)

// Version is a string type for dependency injection of the build version.
type Version string

// healthCheckTimeout bounds the backend probe made by Status.
const healthCheckTimeout = 5 * time.Second

// HealthHandler serves liveness and combined gateway/backend status.
type HealthHandler struct {
	svc     *service.ProxyService
	cfg     *config.Config
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(svc *service.ProxyService, cfg *config.Config, v Version) *HealthHandler {
	return &HealthHandler{svc: svc, cfg: cfg, version: v}
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status probes the backend health endpoint and reports both sides in one
// document. The gateway itself always answers 200 here; backend
// unavailability is data, not an error.
func (h *HealthHandler) Status(c echo.Context) error {
	report := map[string]any{
		"frontend":   "running",
		"version":    string(h.version),
		"backendUrl": h.cfg.Backend.BaseURL,
		"timestamp":  time.Now().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	resp, err := h.svc.Forward(&model.ProxyRequest{
		Ctx:    ctx,
		Method: http.MethodGet,
		Path:   "/api/rate/health",
		Header: c.Request().Header,
	}, service.BodyNone)
	if err != nil {
		report["backend"] = "disconnected"
		report["error"] = err.Error()
		return c.JSON(http.StatusOK, report)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	msg := strings.TrimSpace(string(body))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		report["backend"] = "connected"
		report["backendMessage"] = msg
	} else {
		report["backend"] = "disconnected"
		report["backendMessage"] = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, msg)
	}
	return c.JSON(http.StatusOK, report)
}
