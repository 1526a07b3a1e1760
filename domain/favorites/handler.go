package favorites

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for favorites
type Handler struct {
	svc *Service
}

// NewHandler creates a new favorite handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Toggle adds or removes a favorite
// POST /api/movies/:movieId/favorite
func (h *Handler) Toggle(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	res, err := h.svc.Toggle(c.Request().Context(), user.ID, movieID)
	if err != nil {
		return err
	}
	msg := "Removed from favorites"
	if res.IsFavorite {
		msg = "Added to favorites"
	}
	return response.Message(c, msg, res)
}

// Status reports whether a movie is a favorite
// GET /api/movies/:movieId/favorite/status
func (h *Handler) Status(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	st, err := h.svc.Status(c.Request().Context(), user.ID, movieID)
	if err != nil {
		return err
	}
	return response.OK(c, st)
}

// List returns the caller's favorite movies
// GET /api/movies/favorites
func (h *Handler) List(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), user.ID, p)
	if err != nil {
		return err
	}
	return response.OK(c, page)
}
