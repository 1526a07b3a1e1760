package recommendations

import "github.com/labstack/echo/v4"

// RegisterRoutes registers recommendation routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/movies/popular", h.Popular)
	e.GET("/api/movies/:movieId/related", h.Related)
}
