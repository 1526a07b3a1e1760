package recommendations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/cache"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

const (
	namespaceRelated = "related"
	namespacePopular = "popular"
)

type source interface {
	Related(ctx context.Context, movieID uuid.UUID, limit int) ([]movies.Movie, error)
	Popular(ctx context.Context, t movies.Type, p pagination.Params) ([]movies.Movie, int, error)
}

// Service serves related and popular movies through the cache
type Service struct {
	repo  source
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService creates a new recommendation service
func NewService(repo *Repository, c cache.Cache, cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: c,
		ttl:   cfg.Cache.TTL,
		log:   log.With(logger.Scope("recommendations.svc")),
	}
}

// Related returns movies sharing a category or country with movieID.
func (s *Service) Related(ctx context.Context, movieID uuid.UUID, limit int) ([]movies.Movie, error) {
	key := fmt.Sprintf("%s:%d", movieID, limit)
	return cache.Remember(ctx, s.cache, namespaceRelated, key, s.ttl, func(ctx context.Context) ([]movies.Movie, error) {
		return s.repo.Related(ctx, movieID, limit)
	})
}

// Popular returns a page of the most viewed movies, optionally of one type.
func (s *Service) Popular(ctx context.Context, t movies.Type, p pagination.Params) (*movies.MoviePage, error) {
	key := fmt.Sprintf("%s:%d:%d", t, p.Page, p.Limit)
	return cache.Remember(ctx, s.cache, namespacePopular, key, s.ttl, func(ctx context.Context) (*movies.MoviePage, error) {
		list, total, err := s.repo.Popular(ctx, t, p)
		if err != nil {
			return nil, err
		}
		return &movies.MoviePage{Movies: list, Pagination: pagination.NewMeta(p, total)}, nil
	})
}
