package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// store is the persistence the service needs; *Repository implements it.
type store interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) error
	List(ctx context.Context, p pagination.Params) ([]User, int, error)
	Update(ctx context.Context, u *User, columns ...string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service handles accounts and authentication
type Service struct {
	repo   store
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	log    *slog.Logger
}

// NewService creates a new user service
func NewService(repo *Repository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log.With(logger.Scope("users.svc")),
	}
}

// Register creates an account and signs a token for it.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, apperror.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &User{Email: email, Password: hash, Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", slog.String("user_id", u.ID.String()))
	return s.issue(u)
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Compare(u.Password, req.Password)
	if err != nil {
		s.log.Warn("stored password hash is unusable", slog.String("user_id", u.ID.String()), logger.Error(err))
		return nil, apperror.ErrInvalidCredentials
	}
	if !ok {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issue(u)
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of users.
func (s *Service) List(ctx context.Context, p pagination.Params) (*UserPage, error) {
	users, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: users, Pagination: pagination.NewMeta(p, total)}, nil
}

// Update changes a user's name or admin flag.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := []string{"updated_at"}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
		columns = append(columns, "name")
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
		columns = append(columns, "is_admin")
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u, columns...); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user. Admins cannot delete themselves.
func (s *Service) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if actor == id {
		return apperror.NewBadRequest("You cannot delete your own account")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.ErrUserNotFound
	}
	s.log.Info("user deleted", slog.String("user_id", id.String()), slog.String("by", actor.String()))
	return nil
}

// EnsureAdmin creates the admin account, or promotes an existing account
// with that email. The password of an existing account is left unchanged.
// It reports whether a new account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = normalizeEmail(email)

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.IsAdmin {
			return false, nil
		}
		u.IsAdmin = true
		u.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, u, "is_admin", "updated_at"); err != nil {
			return false, err
		}
		s.log.Info("existing user promoted to admin", slog.String("email", email))
		return false, nil
	case !errors.Is(err, apperror.ErrUserNotFound):
		return false, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, apperror.NewInternal("failed to hash password", err)
	}
	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}

	u = &User{Email: email, Password: hash, Name: name, IsAdmin: true}
	if err := s.repo.Create(ctx, u); err != nil {
		return false, err
	}
	s.log.Info("admin account created", slog.String("email", email))
	return true, nil
}

func (s *Service) issue(u *User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to sign token", err)
	}
	return &AuthResponse{User: u, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
