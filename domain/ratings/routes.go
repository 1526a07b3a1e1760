package ratings

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

// RegisterRoutes registers rating routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	e.GET("/api/movies/:movieId/ratings", h.List)
	e.POST("/api/movies/:movieId/ratings", h.Rate, authMiddleware.RequireAuth())
	e.DELETE("/api/movies/:movieId/ratings", h.Delete, authMiddleware.RequireAuth())
}
