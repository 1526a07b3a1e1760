package users

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/response"
)

// Handler handles HTTP requests for auth and users
type Handler struct {
	svc *Service
}

// NewHandler creates a new user handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register creates an account
// POST /api/auth/register
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.svc.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return response.Created(c, "User registered successfully", res)
}

// Login signs a token for valid credentials
// POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.svc.Login(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return response.Message(c, "Login successful", res)
}

// Me returns the caller's profile
// GET /api/auth/me
func (h *Handler) Me(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	u, err := h.svc.Me(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return response.OK(c, u)
}

// List returns all users
// GET /api/users
func (h *Handler) List(c echo.Context) error {
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return response.OK(c, page)
}

// Update changes a user's name or admin flag
// PUT /api/users/:id
func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid user id")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.svc.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return response.Message(c, "User updated successfully", u)
}

// Delete removes a user
// DELETE /api/users/:id
func (h *Handler) Delete(c echo.Context) error {
	user := auth.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid user id")
	}

	if err := h.svc.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	return response.Message(c, "User deleted successfully", nil)
}
