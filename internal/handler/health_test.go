package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(newTestService(t, testConfig("http://127.0.0.1:1")), testConfig("http://127.0.0.1:1"), "1.0.0")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()

	if err := h.Healthz(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Healthz() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestStatus_BackendConnected(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rate/health" {
			t.Errorf("backend path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer upstream.Close()

	cfg := testConfig(upstream.URL)
	h := NewHealthHandler(newTestService(t, cfg), cfg, "1.0.0")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody)
	rec := httptest.NewRecorder()

	if err := h.Status(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var report map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report["frontend"] != "running" {
		t.Errorf("frontend = %v, want running", report["frontend"])
	}
	if report["backend"] != "connected" {
		t.Errorf("backend = %v, want connected", report["backend"])
	}
	if report["version"] != "1.0.0" {
		t.Errorf("version = %v", report["version"])
	}
	if report["backendUrl"] != upstream.URL {
		t.Errorf("backendUrl = %v, want %q", report["backendUrl"], upstream.URL)
	}
}

func TestStatus_BackendDown_Still200(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	h := NewHealthHandler(newTestService(t, cfg), cfg, "1.0.0")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody)
	rec := httptest.NewRecorder()

	if err := h.Status(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with the backend down", rec.Code)
	}

	var report map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report["backend"] != "disconnected" {
		t.Errorf("backend = %v, want disconnected", report["backend"])
	}
	if report["error"] == nil || report["error"] == "" {
		t.Error("want error detail for the failed probe")
	}
}

func TestStatus_BackendUnhealthyStatusCode(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db down", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	cfg := testConfig(upstream.URL)
	h := NewHealthHandler(newTestService(t, cfg), cfg, "1.0.0")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody)
	rec := httptest.NewRecorder()

	if err := h.Status(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	var report map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &report)
	if report["backend"] != "disconnected" {
		t.Errorf("backend = %v, want disconnected on HTTP 503", report["backend"])
	}
	if report["backendMessage"] != "HTTP 503: db down" {
		t.Errorf("backendMessage = %v", report["backendMessage"])
	}
}
