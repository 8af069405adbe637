package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPreflight_AnswersOptionsLocally(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodOptions, "/api/shop/cart", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reachedNext := false
	next := func(c echo.Context) error {
		reachedNext = true
		return nil
	}

	if err := Preflight()(next)(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}

	if reachedNext {
		t.Error("OPTIONS must be answered without invoking the route handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowMethods); got != "GET, POST, PUT, DELETE, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowHeaders); got != "*" {
		t.Errorf("Allow-Headers = %q, want *", got)
	}
}

func TestPreflight_PassesThroughOtherMethods(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/rate/today", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reachedNext := false
	next := func(c echo.Context) error {
		reachedNext = true
		return c.NoContent(http.StatusNoContent)
	}

	if err := Preflight()(next)(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}

	if !reachedNext {
		t.Error("GET must reach the route handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want handler's 204", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/rate/today", http.NoBody)
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Proxy-Authorization", "Basic xyz")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		for _, h := range hopByHopHeaders {
			if got := c.Request().Header.Get(h); got != "" {
				t.Errorf("hop-by-hop header %s survived: %q", h, got)
			}
		}
		return c.NoContent(http.StatusOK)
	}

	if err := SecurityHeaders()(next)(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}
