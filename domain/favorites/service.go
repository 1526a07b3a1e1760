package favorites

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// Service handles user favorite lists
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new favorite service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("favorites.svc")),
	}
}

// Toggle adds the movie to the user's favorites, or removes it if present.
func (s *Service) Toggle(ctx context.Context, userID, movieID uuid.UUID) (*ToggleResult, error) {
	added, err := s.repo.Toggle(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	s.log.Debug("favorite toggled",
		slog.String("movie_id", movieID.String()),
		slog.Bool("favorite", added))
	return &ToggleResult{IsFavorite: added}, nil
}

// Status reports whether the movie is on the user's list.
func (s *Service) Status(ctx context.Context, userID, movieID uuid.UUID) (*Status, error) {
	ok, err := s.repo.IsFavorite(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	return &Status{IsFavorite: ok}, nil
}

// List returns a page of the user's favorite movies.
func (s *Service) List(ctx context.Context, userID uuid.UUID, p pagination.Params) (*movies.MoviePage, error) {
	list, total, err := s.repo.ListMovies(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return &movies.MoviePage{Movies: list, Pagination: pagination.NewMeta(p, total)}, nil
}
