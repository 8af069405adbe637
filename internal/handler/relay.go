// Package handler implements the gateway's HTTP route handlers.
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"knowallrates-gateway/internal/model"
	"knowallrates-gateway/internal/service"
)

// Diagnostic headers attached to degraded responses.
const (
	HeaderDataSource = "X-Data-Source"
	HeaderError      = "X-Error"
)

// maxErrorBodyBytes bounds how much of a backend error body is read.
const maxErrorBodyBytes = 64 << 10

// setCORSHeaders attaches the permissive allow-list used by read endpoints
// and preflight responses.
func setCORSHeaders(h http.Header) {
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
	h.Set(echo.HeaderAccessControlAllowHeaders, "*")
}

// relayOpts describes a single forwarded route.
type relayOpts struct {
	method      string
	path        string
	query       url.Values
	requireAuth bool
	cors        bool
	body        service.BodyMode
}

// relay holds the shared forwarding flow embedded by every resource handler.
type relay struct {
	svc    *service.ProxyService
	logger *slog.Logger
}

// forward builds a ProxyRequest from the echo context and sends it upstream.
// Callers own the returned response body.
func (r *relay) forward(c echo.Context, opts relayOpts) (*model.ProxyResponse, error) {
	req := c.Request()

	var body io.ReadCloser
	if opts.body != service.BodyNone {
		body = req.Body
	}

	return r.svc.Forward(&model.ProxyRequest{
		Ctx:    req.Context(),
		Method: opts.method,
		Path:   opts.path,
		Query:  opts.query,
		Header: req.Header,
		Body:   body,
	}, opts.body)
}

// do runs the full relay flow: auth precondition, forward, and response
// translation. Backend status codes pass through unchanged; transport
// failures become a 500 with a diagnostic envelope.
func (r *relay) do(c echo.Context, opts relayOpts) error {
	if opts.requireAuth && c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		return c.JSON(http.StatusUnauthorized, model.ErrorEnvelope{Message: "Authorization required"})
	}

	resp, err := r.forward(c, opts)
	if err != nil {
		return r.transportError(c, opts.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if opts.cors {
		setCORSHeaders(c.Response().Header())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.JSON(resp.StatusCode, model.ErrorEnvelope{Message: backendErrorMessage(resp)})
	}

	return relayBody(c, resp, r.logger)
}

func (r *relay) transportError(c echo.Context, path string, err error) error {
	r.logger.Error("backend request failed",
		"err", err,
		"path", path,
	)
	return c.JSON(http.StatusInternalServerError, model.ErrorDetail{
		Message: "Backend request failed",
		Error:   err.Error(),
	})
}

// relayBody streams the backend body to the client with the backend's status
// and content type. If the copy fails mid-stream the status has already been
// sent, so the client receives a truncated response with the original status;
// that is an inherent trade-off of streaming proxies and is only logged.
func relayBody(c echo.Context, resp *model.ProxyResponse, logger *slog.Logger) error {
	if ct := resp.Header.Get(echo.HeaderContentType); ct != "" {
		c.Response().Header().Set(echo.HeaderContentType, ct)
	}
	c.Response().WriteHeader(resp.StatusCode)

	if _, err := io.Copy(c.Response(), resp.Body); err != nil {
		logger.Error("streaming response body",
			"err", err,
			"path", c.Request().URL.Path,
		)
	}
	return nil
}

// backendErrorMessage derives the message field for a non-2xx backend
// response: the backend's own message when its body is a JSON envelope,
// otherwise the raw text, wrapped with the status code.
func backendErrorMessage(resp *model.ProxyResponse) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	text := strings.TrimSpace(string(raw))

	var env model.ErrorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		text = env.Message
	}
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return fmt.Sprintf("Backend error: %d - %s", resp.StatusCode, text)
}

// headerValue flattens an error string into a single header-safe line.
func headerValue(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
