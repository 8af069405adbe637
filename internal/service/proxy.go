// Package service implements the core request forwarding logic.
package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"knowallrates-gateway/internal/client"
	"knowallrates-gateway/internal/config"
	"knowallrates-gateway/internal/model"
)

// BodyMode selects how the inbound body and content headers are forwarded.
type BodyMode int

const (
	// BodyNone forwards no body (GET/DELETE style requests).
	BodyNone BodyMode = iota
	// BodyJSON forwards the body with JSON content negotiation headers.
	BodyJSON
	// BodyMultipart forwards the raw form body, preserving the inbound
	// Content-Type so the boundary parameter set by the client's multipart
	// encoder survives. The body is never parsed or re-serialized.
	BodyMultipart
)

const userAgent = "KnowAllRates-Gateway/1.0"

// ProxyService handles the forwarding logic for gateway requests.
type ProxyService struct {
	client  *client.BackendClient
	logger  *slog.Logger
	baseURL string
}

// NewProxyService creates a ProxyService. The configured base URL is expected
// to be normalized (no trailing slash) by the config loader; it is trimmed
// again here so a hand-built Config behaves the same.
func NewProxyService(c *client.BackendClient, cfg *config.Config, logger *slog.Logger) *ProxyService {
	return &ProxyService{
		client:  c,
		logger:  logger.With("component", "proxy_service"),
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
	}
}

// BackendURL joins the normalized base URL with a resource path and optional
// query, guaranteeing exactly one slash between base and path.
func (s *ProxyService) BackendURL(path string, query url.Values) string {
	u := s.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Forward sends a ProxyRequest to the backend and returns the response.
// The caller is responsible for closing the response body.
func (s *ProxyService) Forward(pr *model.ProxyRequest, mode BodyMode) (*model.ProxyResponse, error) {
	target := s.BackendURL(pr.Path, pr.Query)
	header := buildHeader(pr.Header, mode)

	s.logger.Debug("forwarding request",
		"method", pr.Method,
		"path", pr.Path,
	)

	resp, err := s.client.DoStream(pr.Ctx, pr.Method, target, header, pr.Body)
	if err != nil {
		return nil, fmt.Errorf("forward to backend: %w", err)
	}
	return resp, nil
}

// buildHeader constructs the outbound header set. The Authorization header,
// when present, is copied verbatim; the gateway never mints credentials.
func buildHeader(src http.Header, mode BodyMode) http.Header {
	dst := make(http.Header)

	if auth := src.Get("Authorization"); auth != "" {
		dst.Set("Authorization", auth)
	}

	switch mode {
	case BodyJSON:
		dst.Set("Content-Type", "application/json")
		dst.Set("Accept", "application/json")
	case BodyMultipart:
		if ct := src.Get("Content-Type"); ct != "" {
			dst.Set("Content-Type", ct)
		}
	case BodyNone:
		dst.Set("Accept", "application/json")
	}

	dst.Set("User-Agent", userAgent)
	return dst
}
