package catalog

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for categories, countries, actors and directors
type Handler struct {
	svc *Service
}

// NewHandler creates a new catalog handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListCategories returns all categories
// GET /api/categories
func (h *Handler) ListCategories(c echo.Context) error {
	items, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, items)
}

// ListCountries returns all countries
// GET /api/countries
func (h *Handler) ListCountries(c echo.Context) error {
	items, err := h.svc.ListCountries(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, items)
}

// ListPeople returns a handler listing actors or directors
// GET /api/actors, GET /api/directors
func (h *Handler) ListPeople(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := pagination.FromContext(c)
		if err != nil {
			return err
		}

		page, err := h.svc.ListPeople(c.Request().Context(), kind, c.QueryParam("search"), p)
		if err != nil {
			return err
		}
		return response.OK(c, page)
	}
}

// Create returns a handler creating an entity of kind
// POST /api/admin/{categories,countries,actors,directors}
func (h *Handler) Create(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req EntityRequest
		if err := c.Bind(&req); err != nil {
			return apperror.ErrBadRequest.WithMessage("invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		entity, err := h.svc.Create(c.Request().Context(), kind, req)
		if err != nil {
			return err
		}
		return response.Created(c, kind.Label()+" created successfully", entity)
	}
}

// Update returns a handler updating an entity of kind
// PUT /api/admin/{categories,countries,actors,directors}/:id
func (h *Handler) Update(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return apperror.ErrBadRequest.WithMessage("invalid " + string(kind) + " id")
		}

		var req EntityRequest
		if err := c.Bind(&req); err != nil {
			return apperror.ErrBadRequest.WithMessage("invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		entity, err := h.svc.Update(c.Request().Context(), kind, id, req)
		if err != nil {
			return err
		}
		return response.Message(c, kind.Label()+" updated successfully", entity)
	}
}

// Delete returns a handler deleting an entity of kind
// DELETE /api/admin/{categories,countries,actors,directors}/:id
func (h *Handler) Delete(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return apperror.ErrBadRequest.WithMessage("invalid " + string(kind) + " id")
		}

		if err := h.svc.Delete(c.Request().Context(), kind, id); err != nil {
			return err
		}
		return response.Message(c, kind.Label()+" deleted successfully", nil)
	}
}
