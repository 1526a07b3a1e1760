package movies

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

// RegisterRoutes registers movie routes. Static paths such as
// /api/movies/popular are registered by their own modules; echo matches
// them before the :slug parameter.
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	e.GET("/api/movies", h.List)
	e.GET("/api/movies/:slug", h.GetBySlug)

	admin := e.Group("/api/admin/movies")
	admin.Use(authMiddleware.RequireAdmin())
	admin.GET("", h.AdminList)
	admin.POST("", h.Create)
	admin.PUT("/:movieId", h.Update)
	admin.DELETE("/:movieId", h.Delete)
}
