package users

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

var errEmailTaken = apperror.NewDuplicate("Email already exists")

// Repository handles database operations for users
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new user repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("users.repo")),
	}
}

// GetByEmail looks a user up by email (case-insensitive).
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u := new(User)
	err := r.db.NewSelect().Model(u).Where("lower(u.email) = lower(?)", email).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		r.log.Error("failed to get user by email", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return u, nil
}

// GetByID looks a user up by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u := new(User)
	if err := r.db.NewSelect().Model(u).Where("u.id = ?", id).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		r.log.Error("failed to get user by id", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return u, nil
}

// Create inserts a user.
func (r *Repository) Create(ctx context.Context, u *User) error {
	if _, err := r.db.NewInsert().Model(u).Returning("*").Exec(ctx); err != nil {
		if pgutils.IsUniqueViolation(err) {
			return errEmailTaken
		}
		r.log.Error("failed to create user", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// List returns a page of users, newest first.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]User, int, error) {
	users := make([]User, 0)
	total, err := r.db.NewSelect().
		Model(&users).
		OrderExpr("u.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}
	return users, total, nil
}

// Update writes the given columns by primary key.
func (r *Repository) Update(ctx context.Context, u *User, columns ...string) error {
	_, err := r.db.NewUpdate().Model(u).Column(columns...).WherePK().Exec(ctx)
	if err != nil {
		r.log.Error("failed to update user", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Delete removes a user; their ratings, comments and favorites cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.NewDelete().Model((*User)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
