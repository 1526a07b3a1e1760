package ratings

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

// Repository handles database operations for ratings
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new rating repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("ratings.repo")),
	}
}

// MovieExists returns ErrMovieNotFound when the movie is missing.
func (r *Repository) MovieExists(ctx context.Context, movieID uuid.UUID) error {
	return movies.MustExist(ctx, r.db, movieID)
}

// Upsert creates or replaces the caller's rating of a movie.
func (r *Repository) Upsert(ctx context.Context, rating *Rating) error {
	_, err := r.db.NewInsert().
		Model(rating).
		On("CONFLICT (user_id, movie_id) DO UPDATE").
		Set("score = EXCLUDED.score").
		Set("review = EXCLUDED.review").
		Set("updated_at = now()").
		Returning("*").
		Exec(ctx)
	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			return apperror.ErrMovieNotFound
		}
		if pgutils.IsCheckViolation(err) {
			return apperror.ErrValidation.WithMessage("score must be between 1 and 5")
		}
		r.log.Error("failed to upsert rating", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// GetWithUser loads one rating with its author.
func (r *Repository) GetWithUser(ctx context.Context, id uuid.UUID) (*Rating, error) {
	rating := new(Rating)
	err := r.db.NewSelect().
		Model(rating).
		Relation("User").
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return rating, nil
}

// ListByMovie returns one page of a movie's ratings, newest first.
func (r *Repository) ListByMovie(ctx context.Context, movieID uuid.UUID, p pagination.Params) ([]Rating, int, error) {
	ratings := make([]Rating, 0)
	total, err := r.db.NewSelect().
		Model(&ratings).
		Relation("User", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "name", "email")
		}).
		Where("r.movie_id = ?", movieID).
		OrderExpr("r.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		r.log.Error("failed to list ratings", logger.Error(err))
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}
	return ratings, total, nil
}

// Stats returns the average score and count of a movie's ratings.
func (r *Repository) Stats(ctx context.Context, movieID uuid.UUID) (Stats, error) {
	var stats Stats
	err := r.db.NewSelect().
		Model((*Rating)(nil)).
		ColumnExpr("COALESCE(AVG(r.score), 0)::float8 AS average_score").
		ColumnExpr("COUNT(*) AS total_ratings").
		Where("r.movie_id = ?", movieID).
		Scan(ctx, &stats)
	if err != nil {
		return Stats{}, apperror.ErrDatabase.WithInternal(err)
	}
	return stats, nil
}

// Delete removes the user's rating of a movie, reporting whether one existed.
func (r *Repository) Delete(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*Rating)(nil)).
		Where("user_id = ?", userID).
		Where("movie_id = ?", movieID).
		Exec(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
