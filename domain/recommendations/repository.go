package recommendations

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// Repository reads recommendation candidates
type Repository struct {
	db     bun.IDB
	movies *movies.Repository
	log    *slog.Logger
}

// NewRepository creates a new recommendation repository
func NewRepository(db bun.IDB, movieRepo *movies.Repository, log *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		movies: movieRepo,
		log:    log.With(logger.Scope("recommendations.repo")),
	}
}

// Related returns up to limit other movies sharing a category or a country
// with movieID, most viewed first.
func (r *Repository) Related(ctx context.Context, movieID uuid.UUID, limit int) ([]movies.Movie, error) {
	if err := movies.MustExist(ctx, r.db, movieID); err != nil {
		return nil, err
	}

	related := make([]movies.Movie, 0)
	err := r.db.NewSelect().
		Model(&related).
		Where("m.id <> ?", movieID).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("EXISTS (SELECT 1 FROM movie_categories AS mc WHERE mc.movie_id = m.id AND mc.category_slug IN (SELECT category_slug FROM movie_categories WHERE movie_id = ?))", movieID).
				WhereOr("EXISTS (SELECT 1 FROM movie_countries AS mco WHERE mco.movie_id = m.id AND mco.country_slug IN (SELECT country_slug FROM movie_countries WHERE movie_id = ?))", movieID)
		}).
		OrderExpr("m.view DESC").
		OrderExpr("m.id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to load related movies", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	if err := movies.LoadTaxa(ctx, r.db, related); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return related, nil
}

// Popular returns one page of movies ordered by views.
func (r *Repository) Popular(ctx context.Context, t movies.Type, p pagination.Params) ([]movies.Movie, int, error) {
	return r.movies.List(ctx, movies.Filter{Type: t, Order: movies.OrderViews}, p)
}
