package episodes

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

// RegisterRoutes registers episode routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	e.GET("/api/movies/:movieId/episodes", h.List)

	admin := authMiddleware.RequireAdmin()
	e.POST("/api/admin/movies/:movieId/episodes", h.Create, admin)
	e.PUT("/api/admin/episodes/:episodeId", h.Update, admin)
	e.DELETE("/api/admin/episodes/:episodeId", h.Delete, admin)
}
