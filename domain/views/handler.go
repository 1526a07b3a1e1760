package views

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for views
type Handler struct {
	svc *Service
}

// NewHandler creates a new view handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Record increments a movie's view counter
// POST /api/movies/:movieId/view
func (h *Handler) Record(c echo.Context) error {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	res, err := h.svc.Record(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return response.Message(c, "View recorded", res)
}

// Stats returns the most viewed movies in a period
// GET /api/movies/views/stats
func (h *Handler) Stats(c echo.Context) error {
	period, ok := ParsePeriod(c.QueryParam("period"))
	if !ok {
		return apperror.NewBadRequest("period must be one of day, week, month, year")
	}
	p, err := pagination.Parse("", c.QueryParam("limit"), pagination.DefaultLimit)
	if err != nil {
		return err
	}

	stats, err := h.svc.Stats(c.Request().Context(), period, p.Limit)
	if err != nil {
		return err
	}
	return response.OK(c, stats)
}
