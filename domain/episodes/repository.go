package episodes

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

var (
	ErrEpisodeNotFound = apperror.New(http.StatusNotFound, "episode_not_found", "Episode not found")
	errDuplicateSlug   = apperror.NewDuplicate("Episode slug already exists for this movie")
)

// Repository handles database operations for episodes
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new episode repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("episodes.repo")),
	}
}

// ListByMovie returns a movie's episodes ordered by server then name.
func (r *Repository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]Episode, error) {
	eps := make([]Episode, 0)
	err := r.db.NewSelect().
		Model(&eps).
		Where("movie_id = ?", movieID).
		OrderExpr("server_name ASC, name ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return eps, nil
}

// MovieExists reports whether the movie row exists.
func (r *Repository) MovieExists(ctx context.Context, movieID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Table("movies").
		Where("id = ?", movieID).
		Exists(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return exists, nil
}

// GetByID returns one episode.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Episode, error) {
	ep := new(Episode)
	if err := r.db.NewSelect().Model(ep).Where("ep.id = ?", id).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEpisodeNotFound
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return ep, nil
}

// Create inserts a new episode.
func (r *Repository) Create(ctx context.Context, ep *Episode) error {
	if _, err := r.db.NewInsert().Model(ep).Returning("*").Exec(ctx); err != nil {
		return r.writeErr(err)
	}
	return nil
}

// Update writes the whole episode by primary key.
func (r *Repository) Update(ctx context.Context, ep *Episode) error {
	_, err := r.db.NewUpdate().
		Model(ep).
		Column("server_name", "name", "slug", "filename", "link_embed", "link_m3u8", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return r.writeErr(err)
	}
	return nil
}

// Delete removes an episode, reporting whether it existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.NewDelete().Model((*Episode)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repository) writeErr(err error) error {
	if pgutils.IsUniqueViolation(err) {
		return errDuplicateSlug
	}
	if pgutils.IsForeignKeyViolation(err) {
		return apperror.ErrMovieNotFound
	}
	r.log.Error("episode write failed", logger.Error(err))
	return apperror.ErrDatabase.WithInternal(err)
}
