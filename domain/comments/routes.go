package comments

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

// RegisterRoutes registers comment routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	e.GET("/api/movies/:movieId/comments", h.List)
	e.POST("/api/movies/:movieId/comments", h.Create, authMiddleware.RequireAuth())
	e.DELETE("/api/comments/:commentId", h.Delete, authMiddleware.RequireAuth())
}
