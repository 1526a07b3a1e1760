package views

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/metrics"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// Service handles view counting and statistics
type Service struct {
	repo *Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new view service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("views.svc")),
		now:  time.Now,
	}
}

// Record counts one view of a movie.
func (s *Service) Record(ctx context.Context, movieID uuid.UUID) (*ViewCount, error) {
	view, err := s.repo.Increment(ctx, movieID)
	if err != nil {
		return nil, err
	}
	metrics.MovieViews.Inc()
	return &ViewCount{View: view}, nil
}

// Stats returns the top movies and total views over a period.
func (s *Service) Stats(ctx context.Context, period Period, limit int) (*Stats, error) {
	since := period.Cutoff(s.now())

	top, err := s.repo.Top(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Total(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Stats{Period: period, Since: since, TotalViews: total, TopMovies: top}, nil
}
