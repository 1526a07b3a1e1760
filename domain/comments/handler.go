package comments

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for comments
type Handler struct {
	svc *Service
}

// NewHandler creates a new comment handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create posts a comment
// POST /api/movies/:movieId/comments
func (h *Handler) Create(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.svc.Create(c.Request().Context(), user.ID, movieID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, "Comment created", comment)
}

// List returns a movie's comments
// GET /api/movies/:movieId/comments
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

// Delete removes a comment
// DELETE /api/comments/:commentId
func (h *Handler) Delete(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}
	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid comment id")
	}

	if err := h.svc.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return response.Message(c, "Comment deleted", nil)
}
