package movies

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for movies
type Handler struct {
	svc *Service
}

// NewHandler creates a new movie handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the public movie listing
// GET /api/movies
func (h *Handler) List(c echo.Context) error {
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	f, err := PublicFilter(c)
	if err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), f, p)
	if err != nil {
		return err
	}
	return response.OK(c, page)
}

// GetBySlug returns one movie with all relations
// GET /api/movies/:slug
func (h *Handler) GetBySlug(c echo.Context) error {
	m, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return response.OK(c, m)
}

// AdminList returns the admin movie listing
// GET /api/admin/movies
func (h *Handler) AdminList(c echo.Context) error {
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	f, err := AdminFilter(c)
	if err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), f, p)
	if err != nil {
		return err
	}
	return response.OK(c, page)
}

// Create creates a movie
// POST /api/admin/movies
func (h *Handler) Create(c echo.Context) error {
	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return response.Created(c, "Movie created successfully", m)
}

// Update replaces a movie
// PUT /api/admin/movies/:movieId
func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.svc.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return response.Message(c, "Movie updated successfully", m)
}

// Delete removes a movie
// DELETE /api/admin/movies/:movieId
func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.Message(c, "Movie deleted successfully", nil)
}
