package favorites

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

// RegisterRoutes registers favorite routes. All of them require a user.
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	requireAuth := authMiddleware.RequireAuth()
	e.GET("/api/movies/favorites", h.List, requireAuth)
	e.POST("/api/movies/:movieId/favorite", h.Toggle, requireAuth)
	e.GET("/api/movies/:movieId/favorite/status", h.Status, requireAuth)
}
