package episodes

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for episodes
type Handler struct {
	svc *Service
}

// NewHandler creates a new episode handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a movie's episodes grouped by server
// GET /api/movies/:movieId/episodes
func (h *Handler) List(c echo.Context) error {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	groups, err := h.svc.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return response.OK(c, groups)
}

// Create adds an episode
// POST /api/admin/movies/:movieId/episodes
func (h *Handler) Create(c echo.Context) error {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid movie id")
	}

	var req CreateEpisodeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ep, err := h.svc.Create(c.Request().Context(), movieID, &req)
	if err != nil {
		return err
	}
	return response.Created(c, "Episode created successfully", ep)
}

// Update patches an episode
// PUT /api/admin/episodes/:episodeId
func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("episodeId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid episode id")
	}

	var req UpdateEpisodeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ep, err := h.svc.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return response.Message(c, "Episode updated successfully", ep)
}

// Delete removes an episode
// DELETE /api/admin/episodes/:episodeId
func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("episodeId"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid episode id")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.Message(c, "Episode deleted successfully", nil)
}
