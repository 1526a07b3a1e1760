package views

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// Repository handles view counter reads and writes
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new view repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("views.repo")),
	}
}

// Increment adds one view in a single statement and returns the new count.
func (r *Repository) Increment(ctx context.Context, movieID uuid.UUID) (int64, error) {
	var view int64
	err := r.db.NewUpdate().
		Model((*movies.Movie)(nil)).
		Set("view = m.view + 1").
		Set("updated_at = now()").
		Where("m.id = ?", movieID).
		Returning("m.view").
		Scan(ctx, &view)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperror.ErrMovieNotFound
		}
		r.log.Error("failed to increment view", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return view, nil
}

// Top returns the most viewed movies updated since cutoff.
func (r *Repository) Top(ctx context.Context, since time.Time, limit int) ([]TopMovie, error) {
	top := make([]TopMovie, 0)
	err := r.db.NewSelect().
		Model((*movies.Movie)(nil)).
		Column("m.id", "m.name", "m.slug", "m.view", "m.poster_url", "m.updated_at").
		Where("m.updated_at >= ?", since).
		OrderExpr("m.view DESC").
		OrderExpr("m.id ASC").
		Limit(limit).
		Scan(ctx, &top)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return top, nil
}

// Total sums the views of movies updated since cutoff.
func (r *Repository) Total(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.NewSelect().
		Model((*movies.Movie)(nil)).
		ColumnExpr("COALESCE(SUM(m.view), 0)").
		Where("m.updated_at >= ?", since).
		Scan(ctx, &total)
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return total, nil
}
