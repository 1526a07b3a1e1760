package views

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

// RegisterRoutes registers view routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	e.POST("/api/movies/:movieId/view", h.Record)
	e.GET("/api/movies/views/stats", h.Stats, authMiddleware.RequireAdmin())
}
