package episodes

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// Service handles business logic for episodes
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new episode service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("episodes.svc")),
	}
}

// ListByMovie returns the movie's episodes grouped by server.
func (s *Service) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]ServerGroup, error) {
	if err := s.mustHaveMovie(ctx, movieID); err != nil {
		return nil, err
	}
	eps, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return Group(eps), nil
}

// Create adds an episode to a movie.
func (s *Service) Create(ctx context.Context, movieID uuid.UUID, req *CreateEpisodeRequest) (*Episode, error) {
	if err := s.mustHaveMovie(ctx, movieID); err != nil {
		return nil, err
	}

	ep := &Episode{
		MovieID:    movieID,
		ServerName: strings.TrimSpace(req.ServerName),
		Name:       strings.TrimSpace(req.Name),
		Slug:       strings.TrimSpace(req.Slug),
		Filename:   req.Filename,
		LinkEmbed:  req.LinkEmbed,
		LinkM3U8:   req.LinkM3U8,
	}
	if err := s.repo.Create(ctx, ep); err != nil {
		return nil, err
	}

	s.log.Info("episode created",
		slog.String("movie_id", movieID.String()),
		slog.String("slug", ep.Slug))
	return ep, nil
}

// Update patches an episode.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateEpisodeRequest) (*Episode, error) {
	ep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(&ep.ServerName, req.ServerName, true)
	apply(&ep.Name, req.Name, true)
	apply(&ep.Slug, req.Slug, true)
	apply(&ep.Filename, req.Filename, false)
	apply(&ep.LinkEmbed, req.LinkEmbed, false)
	apply(&ep.LinkM3U8, req.LinkM3U8, false)
	if ep.Slug == "" || ep.Name == "" {
		return nil, apperror.ErrValidation.WithMessage("name and slug cannot be empty")
	}
	ep.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, ep); err != nil {
		return nil, err
	}
	return ep, nil
}

// Delete removes an episode.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrEpisodeNotFound
	}
	return nil
}

func (s *Service) mustHaveMovie(ctx context.Context, movieID uuid.UUID) error {
	exists, err := s.repo.MovieExists(ctx, movieID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrMovieNotFound
	}
	return nil
}

func apply(dst *string, src *string, trim bool) {
	if src == nil {
		return
	}
	if trim {
		*dst = strings.TrimSpace(*src)
		return
	}
	*dst = *src
}
