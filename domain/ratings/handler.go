package ratings

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for ratings
type Handler struct {
	svc *Service
}

// NewHandler creates a new rating handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Rate creates or updates the caller's rating
// POST /api/movies/:movieId/ratings
func (h *Handler) Rate(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	var req RateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rating, err := h.svc.Rate(c.Request().Context(), user.ID, movieID, &req)
	if err != nil {
		return err
	}
	return response.Message(c, "Rating saved", rating)
}

// List returns a movie's ratings with the average score
// GET /api/movies/:movieId/ratings
func (h *Handler) List(c echo.Context) error {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), movieID, p)
	if err != nil {
		return err
	}
	return response.OK(c, page)
}

// Delete removes the caller's rating
// DELETE /api/movies/:movieId/ratings
func (h *Handler) Delete(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	if err := h.svc.Delete(c.Request().Context(), user.ID, movieID); err != nil {
		return err
	}
	return response.Message(c, "Rating deleted", nil)
}
