package catalog

import (
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
)

var adminPaths = map[Kind]string{
	KindCategory: "/categories",
	KindCountry:  "/countries",
	KindActor:    "/actors",
	KindDirector: "/directors",
}

// RegisterRoutes registers catalog routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	api := e.Group("/api")
	api.GET("/categories", h.ListCategories)
	api.GET("/countries", h.ListCountries)
	api.GET("/actors", h.ListPeople(KindActor))
	api.GET("/directors", h.ListPeople(KindDirector))

	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.RequireAdmin())
	for _, kind := range Kinds {
		path := adminPaths[kind]
		admin.POST(path, h.Create(kind))
		admin.PUT(path+"/:id", h.Update(kind))
		admin.DELETE(path+"/:id", h.Delete(kind))
	}
}
