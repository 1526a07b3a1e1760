package favorites

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/database"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

var errAlreadyFavorite = apperror.NewDuplicate("Movie already in favorites")

// Repository handles database operations for favorites
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new favorite repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("favorites.repo")),
	}
}

// Toggle flips the favorite for (userID, movieID) in one transaction and
// returns whether the movie is a favorite afterwards. An insert that loses a
// race to a concurrent toggle keeps the winner's row and fails as a duplicate.
func (r *Repository) Toggle(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	tx, err := database.BeginSafeTx(ctx, r.db)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := movies.MustExist(ctx, tx, movieID); err != nil {
		return false, err
	}

	removed, err := deleteFavorite(ctx, tx, userID, movieID)
	if err != nil {
		return false, r.writeErr(err)
	}

	added := false
	if !removed {
		res, err := tx.NewInsert().
			Model(&Favorite{UserID: userID, MovieID: movieID}).
			On("CONFLICT DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		if err != nil {
			return false, r.writeErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return false, errAlreadyFavorite
		}
		added = true
	}

	if err := tx.Commit(); err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return added, nil
}

func deleteFavorite(ctx context.Context, db bun.IDB, userID, movieID uuid.UUID) (bool, error) {
	res, err := db.NewDelete().
		Model((*Favorite)(nil)).
		Where("user_id = ?", userID).
		Where("movie_id = ?", movieID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// IsFavorite reports whether the user has favorited the movie.
func (r *Repository) IsFavorite(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*Favorite)(nil)).
		Where("f.user_id = ?", userID).
		Where("f.movie_id = ?", movieID).
		Exists(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return exists, nil
}

// ListMovies returns one page of the user's favorite movies, most recently
// added first.
func (r *Repository) ListMovies(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]movies.Movie, int, error) {
	list := make([]movies.Movie, 0)
	total, err := r.db.NewSelect().
		Model(&list).
		Join("JOIN favorites AS f ON f.movie_id = m.id").
		Where("f.user_id = ?", userID).
		OrderExpr("f.created_at DESC").
		OrderExpr("m.id ASC").
		Limit(p.Limit).
		Offset(p.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		r.log.Error("failed to list favorites", logger.Error(err))
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}

	if err := movies.LoadTaxa(ctx, r.db, list); err != nil {
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}
	return list, total, nil
}

func (r *Repository) writeErr(err error) error {
	if pgutils.IsForeignKeyViolation(err) {
		return apperror.ErrMovieNotFound
	}
	r.log.Error("failed to toggle favorite", logger.Error(err))
	return apperror.ErrDatabase.WithInternal(err)
}
