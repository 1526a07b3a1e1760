package health

import "github.com/labstack/echo/v4"

// RegisterRoutes registers probe and version routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.Health)
	e.GET("/healthz", h.Healthz)
	e.GET("/ready", h.Ready)
	e.GET("/debug", h.Debug)
	e.GET("/api/version", h.Version)
}
