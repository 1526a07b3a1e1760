package comments

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

type store interface {
	MovieExists(ctx context.Context, movieID uuid.UUID) error
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID, p pagination.Params) ([]Comment, int, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service handles movie comments
type Service struct {
	repo store
	log  *slog.Logger
}

// NewService creates a new comment service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("comments.svc")),
	}
}

// Create posts a comment on a movie.
func (s *Service) Create(ctx context.Context, userID, movieID uuid.UUID, req *CreateCommentRequest) (*Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.ErrValidation.WithMessage("content is required")
	}
	if err := s.repo.MovieExists(ctx, movieID); err != nil {
		return nil, err
	}

	comment := &Comment{UserID: userID, MovieID: movieID, Content: content}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// List returns a page of a movie's comments.
func (s *Service) List(ctx context.Context, movieID uuid.UUID, p pagination.Params) (*CommentPage, error) {
	if err := s.repo.MovieExists(ctx, movieID); err != nil {
		return nil, err
	}
	comments, total, err := s.repo.ListByMovie(ctx, movieID, p)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: comments, Pagination: pagination.NewMeta(p, total)}, nil
}

// Delete removes a comment. Only its author or an admin may do so.
func (s *Service) Delete(ctx context.Context, actor *auth.AuthUser, id uuid.UUID) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin {
		return apperror.NewForbidden("You can only delete your own comments")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}
	s.log.Info("comment deleted",
		slog.String("comment_id", id.String()),
		slog.String("actor_id", actor.ID.String()))
	return nil
}
