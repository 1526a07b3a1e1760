package catalog

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

// Repository handles database operations for the lookup entities
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new catalog repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("catalog.repo")),
	}
}

// ListCategories returns every category ordered by name
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	return listAll[Category](ctx, r.db)
}

// ListCountries returns every country ordered by name
func (r *Repository) ListCountries(ctx context.Context) ([]Country, error) {
	return listAll[Country](ctx, r.db)
}

// ListActors returns a page of actors, optionally filtered by name
func (r *Repository) ListActors(ctx context.Context, search string, p pagination.Params) ([]Actor, int, error) {
	return listPage[Actor](ctx, r.db, search, p)
}

// ListDirectors returns a page of directors, optionally filtered by name
func (r *Repository) ListDirectors(ctx context.Context, search string, p pagination.Params) ([]Director, int, error) {
	return listPage[Director](ctx, r.db, search, p)
}

// Insert creates model, returning ErrDuplicate on a natural key clash.
func (r *Repository) Insert(ctx context.Context, model any) error {
	if _, err := r.db.NewInsert().Model(model).Returning("*").Exec(ctx); err != nil {
		if pgutils.IsUniqueViolation(err) {
			return apperror.ErrDuplicate
		}
		r.log.Error("failed to insert entity", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Update writes columns of model by primary key. It reports false when no
// row matched.
func (r *Repository) Update(ctx context.Context, model any, columns ...string) (bool, error) {
	res, err := r.db.NewUpdate().
		Model(model).
		Column(columns...).
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return false, apperror.ErrDuplicate
		}
		r.log.Error("failed to update entity", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes model by primary key. Link rows go with it via FK cascade.
func (r *Repository) Delete(ctx context.Context, model any) (bool, error) {
	res, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete entity", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func listAll[T any](ctx context.Context, db bun.IDB) ([]T, error) {
	items := make([]T, 0)
	if err := db.NewSelect().Model(&items).OrderExpr("name ASC").Scan(ctx); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return items, nil
}

func listPage[T any](ctx context.Context, db bun.IDB, search string, p pagination.Params) ([]T, int, error) {
	items := make([]T, 0)
	q := db.NewSelect().
		Model(&items).
		OrderExpr("name ASC").
		Limit(p.Limit).
		Offset(p.Offset())
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}
	return items, total, nil
}
