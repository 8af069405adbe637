package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"knowallrates-gateway/internal/model"
	"knowallrates-gateway/internal/service"
)

// AuthHandler relays authentication and profile requests.
type AuthHandler struct {
	relay
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.ProxyService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{relay{
		svc:    svc,
		logger: logger.With("component", "auth_handler"),
	}}
}

// SignIn relays POST /api/auth/signin.
func (h *AuthHandler) SignIn(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/auth/signin", body: service.BodyJSON, cors: true})
}

// SignUp relays POST /api/auth/signup.
func (h *AuthHandler) SignUp(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/auth/signup", body: service.BodyJSON, cors: true})
}

// ForgotPassword relays POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/auth/forgot-password", body: service.BodyJSON})
}

// ResetPassword relays POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/auth/reset-password", body: service.BodyJSON})
}

// ProfileGet relays GET /api/auth/profile.
func (h *AuthHandler) ProfileGet(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/auth/profile", requireAuth: true, cors: true})
}

// ProfileUpdate relays PUT /api/auth/profile.
func (h *AuthHandler) ProfileUpdate(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPut, path: "/api/auth/profile", requireAuth: true, body: service.BodyJSON, cors: true})
}

// VerifyResetToken relays GET /api/auth/verify-reset-token/{token}.
func (h *AuthHandler) VerifyResetToken(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, model.ErrorEnvelope{Message: "Token is required"})
	}
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/auth/verify-reset-token/" + url.PathEscape(token)})
}
