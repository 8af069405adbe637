package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"knowallrates-gateway/internal/model"
	"knowallrates-gateway/internal/service"
)

// AdminHandler relays asset, product and rate management requests.
// Product create/update carry multipart form bodies (images included); they
// are forwarded raw so the encoder's boundary parameter is preserved.
type AdminHandler struct {
	relay
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc *service.ProxyService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{relay{
		svc:    svc,
		logger: logger.With("component", "admin_handler"),
	}}
}

// Assets relays GET /api/admin/assets.
func (h *AdminHandler) Assets(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/admin/assets", requireAuth: true, cors: true})
}

// ProductsList relays GET /api/admin/products.
func (h *AdminHandler) ProductsList(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/admin/products", requireAuth: true})
}

// ProductCreate relays POST /api/admin/products with a multipart body.
func (h *AdminHandler) ProductCreate(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/admin/products", requireAuth: true, body: service.BodyMultipart})
}

// ProductUpdate relays PUT /api/admin/products/{id} with a multipart body.
func (h *AdminHandler) ProductUpdate(c echo.Context) error {
	id, ok := productID(c)
	if !ok {
		return missingProductID(c)
	}
	return h.do(c, relayOpts{method: http.MethodPut, path: "/api/admin/products/" + id, requireAuth: true, body: service.BodyMultipart})
}

// ProductDelete relays DELETE /api/admin/products/{id}.
func (h *AdminHandler) ProductDelete(c echo.Context) error {
	id, ok := productID(c)
	if !ok {
		return missingProductID(c)
	}
	return h.do(c, relayOpts{method: http.MethodDelete, path: "/api/admin/products/" + id, requireAuth: true})
}

// ProductStatus relays PATCH /api/admin/products/{id}/status.
func (h *AdminHandler) ProductStatus(c echo.Context) error {
	id, ok := productID(c)
	if !ok {
		return missingProductID(c)
	}
	return h.do(c, relayOpts{method: http.MethodPatch, path: "/api/admin/products/" + id + "/status", requireAuth: true, body: service.BodyJSON})
}

// RatesUpdate relays POST /api/admin/rates/update.
func (h *AdminHandler) RatesUpdate(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/admin/rates/update", requireAuth: true, body: service.BodyJSON, cors: true})
}

// productID extracts the positional product identifier from the route.
func productID(c echo.Context) (string, bool) {
	id := c.Param("id")
	if id == "" {
		return "", false
	}
	return url.PathEscape(id), true
}

func missingProductID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, model.ErrorEnvelope{Message: "Product ID is required"})
}
