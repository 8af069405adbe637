package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"knowallrates-gateway/internal/model"
	"knowallrates-gateway/internal/service"
)

var (
	phonePattern   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// ShopHandler relays storefront requests: products, cart and addresses.
// Address writes are validated at the gateway before any backend call.
type ShopHandler struct {
	relay
}

// NewShopHandler creates a ShopHandler.
func NewShopHandler(svc *service.ProxyService, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{relay{
		svc:    svc,
		logger: logger.With("component", "shop_handler"),
	}}
}

// Products relays GET /api/shop/products.
func (h *ShopHandler) Products(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/shop/products", requireAuth: true})
}

// CartGet relays GET /api/shop/cart.
func (h *ShopHandler) CartGet(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/shop/cart", requireAuth: true, cors: true})
}

// CartSave relays POST /api/shop/cart.
func (h *ShopHandler) CartSave(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/shop/cart", requireAuth: true, body: service.BodyJSON})
}

// CartAdd relays POST /api/shop/cart/add.
func (h *ShopHandler) CartAdd(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodPost, path: "/api/shop/cart/add", requireAuth: true, body: service.BodyJSON})
}

// AddressesList relays GET /api/shop/addresses.
func (h *ShopHandler) AddressesList(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/shop/addresses", requireAuth: true, cors: true})
}

// AddressCreate validates and relays POST /api/shop/addresses.
func (h *ShopHandler) AddressCreate(c echo.Context) error {
	return h.forwardAddress(c, http.MethodPost, "/api/shop/addresses")
}

// AddressDefault relays GET /api/shop/addresses/default.
func (h *ShopHandler) AddressDefault(c echo.Context) error {
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/shop/addresses/default", requireAuth: true})
}

// AddressGet relays GET /api/shop/addresses/{id}.
func (h *ShopHandler) AddressGet(c echo.Context) error {
	id, ok := addressID(c)
	if !ok {
		return missingAddressID(c)
	}
	return h.do(c, relayOpts{method: http.MethodGet, path: "/api/shop/addresses/" + id, requireAuth: true})
}

// AddressUpdate validates and relays PUT /api/shop/addresses/{id}.
func (h *ShopHandler) AddressUpdate(c echo.Context) error {
	id, ok := addressID(c)
	if !ok {
		return missingAddressID(c)
	}
	return h.forwardAddress(c, http.MethodPut, "/api/shop/addresses/"+id)
}

// AddressDelete relays DELETE /api/shop/addresses/{id}.
func (h *ShopHandler) AddressDelete(c echo.Context) error {
	id, ok := addressID(c)
	if !ok {
		return missingAddressID(c)
	}
	return h.do(c, relayOpts{method: http.MethodDelete, path: "/api/shop/addresses/" + id, requireAuth: true})
}

// forwardAddress reads the JSON body, validates it, and relays it unchanged.
// Validation failures are client errors and never reach the backend.
func (h *ShopHandler) forwardAddress(c echo.Context, method, path string) error {
	req := c.Request()
	if req.Header.Get(echo.HeaderAuthorization) == "" {
		return c.JSON(http.StatusUnauthorized, model.ErrorEnvelope{Message: "Authorization required"})
	}

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorEnvelope{Message: "Invalid request body"})
	}
	if msg := validateAddress(raw); msg != "" {
		return c.JSON(http.StatusBadRequest, model.ErrorEnvelope{Message: msg})
	}

	req.Body = io.NopCloser(bytes.NewReader(raw))
	return h.do(c, relayOpts{method: method, path: path, requireAuth: true, body: service.BodyJSON})
}

// validateAddress returns an error message for the first violated rule, or
// empty string when the payload is acceptable.
func validateAddress(raw []byte) string {
	var addr model.Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return "Invalid request body"
	}

	required := []struct {
		name  string
		value string
	}{
		{"fullName", addr.FullName},
		{"phoneNumber", addr.PhoneNumber},
		{"addressLine1", addr.AddressLine1},
		{"city", addr.City},
		{"state", addr.State},
		{"pincode", addr.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.name + " is required"
		}
	}

	if !phonePattern.MatchString(addr.PhoneNumber) {
		return "Please enter a valid 10-digit phone number"
	}
	if !pincodePattern.MatchString(addr.Pincode) {
		return "Please enter a valid 6-digit pincode"
	}
	return ""
}

func addressID(c echo.Context) (string, bool) {
	id := c.Param("id")
	if id == "" {
		return "", false
	}
	return url.PathEscape(id), true
}

func missingAddressID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, model.ErrorEnvelope{Message: "Address ID is required"})
}
