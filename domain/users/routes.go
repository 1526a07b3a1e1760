package users

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

// RegisterRoutes registers auth and user management routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware, limiter *auth.IPRateLimiter) {
	g := e.Group("/api/auth")
	g.POST("/register", h.Register, limiter.Middleware())
	g.POST("/login", h.Login, limiter.Middleware())
	g.GET("/me", h.Me, authMiddleware.RequireAuth())

	admin := e.Group("/api/users")
	admin.Use(authMiddleware.RequireAdmin())
	admin.GET("", h.List)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}
