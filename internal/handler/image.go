package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/labstack/echo/v4"

	"knowallrates-gateway/internal/config"
	"knowallrates-gateway/internal/image"
	"knowallrates-gateway/internal/model"
	"knowallrates-gateway/internal/service"
)

// cacheImmutable is the cache directive for uploaded images; filenames are
// content-unique so the bytes never change under a given name.
const cacheImmutable = "public, max-age=31536000, immutable"

// ImageHandler serves product images through an ordered resolution chain:
// backend upload endpoint, then the local uploads directory, then a redirect
// to the generic placeholder. Apart from filename validation, every branch
// ends in a response.
type ImageHandler struct {
	relay
	resolver    *image.Resolver
	placeholder string
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(svc *service.ProxyService, cfg *config.Config, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		relay: relay{
			svc:    svc,
			logger: logger.With("component", "image_handler"),
		},
		resolver:    image.NewResolver(cfg.Uploads.Dir),
		placeholder: cfg.Uploads.Placeholder,
	}
}

// Serve handles GET /api/uploads/products/{filename}.
func (h *ImageHandler) Serve(c echo.Context) error {
	filename := c.Param("filename")
	if err := image.ValidateFilename(filename); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorEnvelope{Message: "Invalid filename"})
	}

	// Remote first.
	resp, err := h.forward(c, relayOpts{
		method: http.MethodGet,
		path:   "/api/uploads/products/" + url.PathEscape(filename),
	})
	if err == nil {
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			ct := resp.Header.Get(echo.HeaderContentType)
			if ct == "" {
				ct = "image/jpeg"
			}
			c.Response().Header().Set("Cache-Control", cacheImmutable)
			return c.Stream(http.StatusOK, ct, resp.Body)
		}
		h.logger.Debug("backend image fetch failed",
			"filename", filename,
			"status", resp.StatusCode,
		)
	} else {
		h.logger.Debug("backend image fetch failed",
			"filename", filename,
			"err", err,
		)
	}

	// Local fallback.
	path, ct, lerr := h.resolver.Resolve(filename)
	switch {
	case lerr == nil:
		f, err := os.Open(path)
		if err == nil {
			defer func() { _ = f.Close() }()
			hdr := c.Response().Header()
			hdr.Set("Cache-Control", cacheImmutable)
			hdr.Set(HeaderDataSource, "local-fallback")
			return c.Stream(http.StatusOK, ct, f)
		}
		h.logger.Error("local image read failed",
			"path", path,
			"err", err,
		)
	case errors.Is(lerr, image.ErrAccessDenied):
		return c.JSON(http.StatusForbidden, model.ErrorEnvelope{Message: "Access denied"})
	}

	// Degraded terminal state.
	return c.Redirect(http.StatusTemporaryRedirect, h.placeholder)
}
