package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// AuthUser represents an authenticated user
type AuthUser struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	IsAdmin bool      `json:"isAdmin"`
}

type contextKey string

// UserContextKey is the echo context key holding the *AuthUser.
const UserContextKey contextKey = "auth_user"

// GetUser retrieves the authenticated user from the Echo context
func GetUser(c echo.Context) *AuthUser {
	if user, ok := c.Get(string(UserContextKey)).(*AuthUser); ok {
		return user
	}
	return nil
}

// SetUser stores user on the Echo context.
func SetUser(c echo.Context, user *AuthUser) {
	c.Set(string(UserContextKey), user)
}

// UserLookup loads the current state of a token's user.
type UserLookup interface {
	LookupUser(ctx context.Context, id uuid.UUID) (*AuthUser, error)
}

// dbUserLookup reads users straight from the users table.
type dbUserLookup struct {
	db bun.IDB
}

// NewUserLookup returns a UserLookup backed by the users table.
func NewUserLookup(db bun.IDB) UserLookup {
	return &dbUserLookup{db: db}
}

func (l *dbUserLookup) LookupUser(ctx context.Context, id uuid.UUID) (*AuthUser, error) {
	user := new(AuthUser)
	err := l.db.NewSelect().
		Table("users").
		Column("id", "email", "name", "is_admin").
		Where("id = ?", id).
		Limit(1).
		Scan(ctx, &user.ID, &user.Email, &user.Name, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrInvalidToken.WithMessage("User no longer exists")
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return user, nil
}

// Middleware provides authentication middleware
type Middleware struct {
	tokens *TokenManager
	users  UserLookup
	log    *slog.Logger
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(tokens *TokenManager, users UserLookup, log *slog.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		log:    log.With(logger.Scope("auth")),
	}
}

// RequireAuth returns middleware that requires a valid bearer token
func (m *Middleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := m.authenticate(c)
			if err != nil {
				m.log.Debug("authentication failed", logger.Error(err))
				return err
			}
			SetUser(c, user)
			return next(c)
		}
	}
}

// RequireAdmin returns middleware that requires an authenticated admin.
// It authenticates on its own, so it can be used without RequireAuth.
func (m *Middleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetUser(c)
			if user == nil {
				var err error
				user, err = m.authenticate(c)
				if err != nil {
					m.log.Debug("authentication failed", logger.Error(err))
					return err
				}
				SetUser(c, user)
			}

			if !user.IsAdmin {
				return apperror.ErrAdminRequired
			}
			return next(c)
		}
	}
}

// authenticate extracts and validates the token from the request
func (m *Middleware) authenticate(c echo.Context) (*AuthUser, error) {
	token := m.extractToken(c.Request())
	if token == "" {
		return nil, apperror.ErrMissingToken
	}

	userID, err := m.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	return m.users.LookupUser(c.Request().Context(), userID)
}

// extractToken extracts the bearer token from request
func (m *Middleware) extractToken(r *http.Request) string {
	auth := r.Header.Get(echo.HeaderAuthorization)
	if auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	return ""
}
