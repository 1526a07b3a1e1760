package movies

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// Service handles business logic for movies
type Service struct {
	repo *Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new movie service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("movies.svc")),
		now:  time.Now,
	}
}

// List returns a page of movies.
func (s *Service) List(ctx context.Context, f Filter, p pagination.Params) (*MoviePage, error) {
	movies, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	return &MoviePage{Movies: movies, Pagination: pagination.NewMeta(p, total)}, nil
}

// GetBySlug returns the full movie detail.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Movie, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Create validates uniqueness and stores a new movie.
func (s *Service) Create(ctx context.Context, req *MovieRequest) (*Movie, error) {
	m := &Movie{}
	req.ToMovie(m)
	if err := s.ensureUnique(ctx, m.Slug, m.Name, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	m.CreatedAt, m.UpdatedAt = now, now

	if err := s.repo.Create(ctx, m, req.Relations(), episodes.Flatten(uuid.Nil, req.Episodes)); err != nil {
		return nil, err
	}

	s.log.Info("movie created", slog.String("movie_id", m.ID.String()), slog.String("slug", m.Slug))
	return s.repo.GetDetail(ctx, m.ID)
}

// Update overwrites a movie and replaces its relations and episodes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *MovieRequest) (*Movie, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ToMovie(m)
	if err := s.ensureUnique(ctx, m.Slug, m.Name, id); err != nil {
		return nil, err
	}
	m.UpdatedAt = s.now()

	found, err := s.repo.Update(ctx, m, req.Relations(), episodes.Flatten(id, req.Episodes))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.ErrMovieNotFound
	}

	s.log.Info("movie updated", slog.String("movie_id", id.String()))
	return s.repo.GetDetail(ctx, id)
}

// Delete removes a movie.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.ErrMovieNotFound
	}
	s.log.Info("movie deleted", slog.String("movie_id", id.String()))
	return nil
}

func (s *Service) ensureUnique(ctx context.Context, slug, name string, exclude uuid.UUID) error {
	conflict, err := s.repo.HasConflict(ctx, slug, name, exclude)
	if err != nil {
		return err
	}
	if conflict {
		return errDuplicateMovie
	}
	return nil
}
