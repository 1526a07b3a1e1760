package comments

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/users"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

var ErrCommentNotFound = apperror.New(http.StatusNotFound, "comment_not_found", "Comment not found")

// Repository handles database operations for comments
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new comment repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("comments.repo")),
	}
}

// MovieExists returns ErrMovieNotFound when the movie is missing.
func (r *Repository) MovieExists(ctx context.Context, movieID uuid.UUID) error {
	return movies.MustExist(ctx, r.db, movieID)
}

// Create inserts a comment and loads its author.
func (r *Repository) Create(ctx context.Context, comment *Comment) error {
	_, err := r.db.NewInsert().
		Model(comment).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			return apperror.ErrMovieNotFound
		}
		r.log.Error("failed to create comment", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	comment.User = new(users.Summary)
	err = r.db.NewSelect().
		Model(comment.User).
		Column("id", "name", "email").
		Where("id = ?", comment.UserID).
		Scan(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// GetByID returns a comment without its author.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	comment := new(Comment)
	err := r.db.NewSelect().
		Model(comment).
		Where("cm.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return comment, nil
}

// ListByMovie returns one page of a movie's comments, newest first.
func (r *Repository) ListByMovie(ctx context.Context, movieID uuid.UUID, p pagination.Params) ([]Comment, int, error) {
	comments := make([]Comment, 0)
	total, err := r.db.NewSelect().
		Model(&comments).
		Relation("User", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "name", "email")
		}).
		Where("cm.movie_id = ?", movieID).
		OrderExpr("cm.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		r.log.Error("failed to list comments", logger.Error(err))
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}
	return comments, total, nil
}

// Delete removes a comment by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
