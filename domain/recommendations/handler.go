package recommendations

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for recommendations
type Handler struct {
	svc *Service
}

// NewHandler creates a new recommendation handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Related returns movies similar to one movie
// GET /api/movies/:movieId/related
func (h *Handler) Related(c echo.Context) error {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}
	p, err := pagination.Parse("", c.QueryParam("limit"), pagination.DefaultLimit)
	if err != nil {
		return err
	}

	list, err := h.svc.Related(c.Request().Context(), movieID, p.Limit)
	if err != nil {
		return err
	}
	return response.OK(c, list)
}

// Popular returns the most viewed movies
// GET /api/movies/popular
func (h *Handler) Popular(c echo.Context) error {
	t, err := movies.ParseType(c.QueryParam("type"))
	if err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}

	page, err := h.svc.Popular(c.Request().Context(), t, p)
	if err != nil {
		return err
	}
	return response.OK(c, page)
}
