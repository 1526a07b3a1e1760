package movies

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/database"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

var (
	errUnknownCategory = apperror.NewBadRequest("One or more categories do not exist")
	errUnknownCountry  = apperror.NewBadRequest("One or more countries do not exist")
	errDuplicateMovie  = apperror.NewDuplicate("Movie name or slug already exists")
)

// updatableColumns are written by admin updates. view and created_at are
// never touched here.
var updatableColumns = []string{
	"slug", "name", "origin_name", "content", "type", "status",
	"poster_url", "thumb_url", "trailer_url", "time", "duration",
	"quality", "lang", "year", "updated_at",
}

// Repository handles database operations for movies
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new movie repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("movies.repo")),
	}
}

// List returns one page of movies matching f, each with categories and
// countries.
func (r *Repository) List(ctx context.Context, f Filter, p pagination.Params) ([]Movie, int, error) {
	movies := make([]Movie, 0)
	q := r.db.NewSelect().Model(&movies)
	q = f.Apply(q).Limit(p.Limit).Offset(p.Offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		r.log.Error("failed to list movies", logger.Error(err))
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}

	if err := LoadTaxa(ctx, r.db, movies); err != nil {
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}
	return movies, total, nil
}

// GetBySlug returns a movie with every relation loaded.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Movie, error) {
	return r.getDetail(ctx, "m.slug = ?", slug)
}

// GetDetail returns a movie by id with every relation loaded.
func (r *Repository) GetDetail(ctx context.Context, id uuid.UUID) (*Movie, error) {
	return r.getDetail(ctx, "m.id = ?", id)
}

func (r *Repository) getDetail(ctx context.Context, where string, arg any) (*Movie, error) {
	m := new(Movie)
	if err := r.db.NewSelect().Model(m).Where(where, arg).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrMovieNotFound
		}
		r.log.Error("failed to get movie", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	if err := LoadDetail(ctx, r.db, m); err != nil {
		r.log.Error("failed to load movie relations", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return m, nil
}

// GetByID returns the bare movie row.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	m := new(Movie)
	if err := r.db.NewSelect().Model(m).Where("m.id = ?", id).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrMovieNotFound
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return m, nil
}

// HasConflict reports whether another movie already uses slug or name.
func (r *Repository) HasConflict(ctx context.Context, slug, name string, exclude uuid.UUID) (bool, error) {
	q := r.db.NewSelect().
		Model((*Movie)(nil)).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("m.slug = ?", slug).WhereOr("m.name = ?", name)
		})
	if exclude != uuid.Nil {
		q = q.Where("m.id <> ?", exclude)
	}

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return exists, nil
}

// Create inserts the movie with its relations and episodes in one
// transaction.
func (r *Repository) Create(ctx context.Context, m *Movie, rel Relations, eps []episodes.Episode) error {
	tx, err := database.BeginSafeTx(ctx, r.db)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NewInsert().Model(m).Returning("*").Exec(ctx); err != nil {
		return r.writeErr("insert movie", err)
	}

	for i := range eps {
		eps[i].MovieID = m.ID
	}
	if err := r.writeChildren(ctx, tx, m.ID, rel, eps); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Update rewrites the scalar fields, then replaces relations and episodes,
// all in one transaction. It reports false when the movie is gone.
func (r *Repository) Update(ctx context.Context, m *Movie, rel Relations, eps []episodes.Episode) (bool, error) {
	tx, err := database.BeginSafeTx(ctx, r.db)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.NewUpdate().
		Model(m).
		Column(updatableColumns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return false, r.writeErr("update movie", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	if err := clearRelations(ctx, tx, m.ID); err != nil {
		return false, r.writeErr("clear relations", err)
	}
	for i := range eps {
		eps[i].MovieID = m.ID
	}
	if err := r.writeChildren(ctx, tx, m.ID, rel, eps); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return true, nil
}

// Delete removes a movie. Episodes, links, ratings, comments and favorites
// cascade; shared entities stay.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.NewDelete().Model((*Movie)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete movie", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repository) writeChildren(ctx context.Context, tx bun.IDB, movieID uuid.UUID, rel Relations, eps []episodes.Episode) error {
	if err := writeRelations(ctx, tx, movieID, rel); err != nil {
		return r.writeErr("write relations", err)
	}
	if err := writeEpisodes(ctx, tx, eps); err != nil {
		return r.writeErr("write episodes", err)
	}
	return nil
}

func (r *Repository) writeErr(op string, err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	if pgutils.IsUniqueViolation(err) {
		return errDuplicateMovie
	}
	r.log.Error("movie write failed", slog.String("op", op), logger.Error(err))
	return apperror.ErrDatabase.WithInternal(err)
}

// Exists reports whether a movie with id exists.
func Exists(ctx context.Context, db bun.IDB, id uuid.UUID) (bool, error) {
	exists, err := db.NewSelect().Model((*Movie)(nil)).Where("m.id = ?", id).Exists(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return exists, nil
}

// MustExist returns ErrMovieNotFound when the movie is missing.
func MustExist(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	exists, err := Exists(ctx, db, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrMovieNotFound
	}
	return nil
}
