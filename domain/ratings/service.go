package ratings

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

var errRatingNotFound = apperror.New(http.StatusNotFound, "rating_not_found", "Rating not found")

type store interface {
	MovieExists(ctx context.Context, movieID uuid.UUID) error
	Upsert(ctx context.Context, rating *Rating) error
	GetWithUser(ctx context.Context, id uuid.UUID) (*Rating, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID, p pagination.Params) ([]Rating, int, error)
	Stats(ctx context.Context, movieID uuid.UUID) (Stats, error)
	Delete(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
}

// Service handles movie ratings
type Service struct {
	repo store
	log  *slog.Logger
}

// NewService creates a new rating service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("ratings.svc")),
	}
}

// Rate creates or replaces the user's rating of a movie.
func (s *Service) Rate(ctx context.Context, userID, movieID uuid.UUID, req *RateRequest) (*Rating, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, apperror.ErrValidation.WithMessage("score must be between 1 and 5")
	}
	if err := s.repo.MovieExists(ctx, movieID); err != nil {
		return nil, err
	}

	rating := &Rating{UserID: userID, MovieID: movieID, Score: req.Score}
	if req.Review != nil {
		review := strings.TrimSpace(*req.Review)
		if review != "" {
			rating.Review = &review
		}
	}

	if err := s.repo.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	s.log.Debug("movie rated",
		slog.String("movie_id", movieID.String()),
		slog.Int("score", rating.Score))

	return s.repo.GetWithUser(ctx, rating.ID)
}

// List returns a page of a movie's ratings with its aggregate score.
func (s *Service) List(ctx context.Context, movieID uuid.UUID, p pagination.Params) (*RatingPage, error) {
	if err := s.repo.MovieExists(ctx, movieID); err != nil {
		return nil, err
	}

	ratings, total, err := s.repo.ListByMovie(ctx, movieID, p)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, movieID)
	if err != nil {
		return nil, err
	}

	return &RatingPage{
		Ratings:      ratings,
		AverageScore: stats.AverageScore,
		TotalRatings: stats.TotalRatings,
		Pagination:   pagination.NewMeta(p, total),
	}, nil
}

// Delete removes the user's rating of a movie.
func (s *Service) Delete(ctx context.Context, userID, movieID uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if !deleted {
		return errRatingNotFound
	}
	return nil
}
