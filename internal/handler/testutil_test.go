package handler

import (
	"io"
	"log/slog"
	"testing"

	"knowallrates-gateway/internal/client"
	"knowallrates-gateway/internal/config"
	"knowallrates-gateway/internal/service"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{
			BaseURL:         baseURL,
			TimeoutSeconds:  5,
			IdleConnections: 5,
			Breaker:         config.BreakerConfig{Disabled: true},
		},
		Uploads: config.UploadsConfig{
			Dir:         "testdata-unused",
			Placeholder: "/placeholder.svg?height=300&width=300",
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, cfg *config.Config) *service.ProxyService {
	t.Helper()
	bc := client.NewBackendClient(cfg, discardLogger(), nil)
	return service.NewProxyService(bc, cfg, discardLogger())
}
