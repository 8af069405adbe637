package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires all route handlers onto the Echo instance. Routes
// mirror the backend API one-for-one at the same relative paths.
func RegisterRoutes(
	e *echo.Echo,
	auth *AuthHandler,
	admin *AdminHandler,
	rate *RateHandler,
	shop *ShopHandler,
	img *ImageHandler,
	health *HealthHandler,
) {
	e.GET("/healthz", health.Healthz)
	e.GET("/api/health", health.Status)

	a := e.Group("/api/auth")
	a.POST("/signin", auth.SignIn)
	a.POST("/signup", auth.SignUp)
	a.POST("/forgot-password", auth.ForgotPassword)
	a.POST("/reset-password", auth.ResetPassword)
	a.GET("/profile", auth.ProfileGet)
	a.PUT("/profile", auth.ProfileUpdate)
	a.GET("/verify-reset-token/:token", auth.VerifyResetToken)

	ad := e.Group("/api/admin")
	ad.GET("/assets", admin.Assets)
	ad.GET("/products", admin.ProductsList)
	ad.POST("/products", admin.ProductCreate)
	ad.PUT("/products/:id", admin.ProductUpdate)
	ad.DELETE("/products/:id", admin.ProductDelete)
	ad.PATCH("/products/:id/status", admin.ProductStatus)
	ad.POST("/rates/update", admin.RatesUpdate)

	r := e.Group("/api/rate")
	r.GET("/today", rate.Today)
	r.GET("/history", rate.History)
	r.GET("/predict", rate.Predict)
	r.GET("/health", rate.Health)

	s := e.Group("/api/shop")
	s.GET("/products", shop.Products)
	s.GET("/cart", shop.CartGet)
	s.POST("/cart", shop.CartSave)
	s.POST("/cart/add", shop.CartAdd)
	s.GET("/addresses", shop.AddressesList)
	s.POST("/addresses", shop.AddressCreate)
	s.GET("/addresses/default", shop.AddressDefault)
	s.GET("/addresses/:id", shop.AddressGet)
	s.PUT("/addresses/:id", shop.AddressUpdate)
	s.DELETE("/addresses/:id", shop.AddressDelete)

	e.GET("/api/uploads/products/:filename", img.Serve)
}
