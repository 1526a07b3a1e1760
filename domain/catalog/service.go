package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

// Service handles business logic for the lookup entities
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new catalog service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("catalog.svc")),
	}
}

// PeoplePage is a paginated actor or director listing.
type PeoplePage struct {
	Items      any             `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) ListCountries(ctx context.Context) ([]Country, error) {
	return s.repo.ListCountries(ctx)
}

// ListPeople lists actors or directors.
func (s *Service) ListPeople(ctx context.Context, kind Kind, search string, p pagination.Params) (*PeoplePage, error) {
	search = strings.TrimSpace(search)

	var (
		items any
		total int
		err   error
	)
	switch kind {
	case KindActor:
		items, total, err = s.repo.ListActors(ctx, search, p)
	case KindDirector:
		items, total, err = s.repo.ListDirectors(ctx, search, p)
	default:
		return nil, apperror.NewBadRequest(fmt.Sprintf("%s is not a person kind", kind))
	}
	if err != nil {
		return nil, err
	}
	return &PeoplePage{Items: items, Pagination: pagination.NewMeta(p, total)}, nil
}

// Create inserts a new entity of kind.
func (s *Service) Create(ctx context.Context, kind Kind, req EntityRequest) (any, error) {
	name, slug, err := normalizeRequest(kind, req)
	if err != nil {
		return nil, err
	}

	model := newModel(kind, uuid.Nil, keyFor(kind, name, slug), name)
	if err := s.repo.Insert(ctx, model); err != nil {
		return nil, s.mapWriteErr(kind, err)
	}

	s.log.Info("entity created", slog.String("kind", string(kind)), slog.String("name", name))
	return model, nil
}

// Update renames an entity. Renaming the natural key cascades to link rows.
func (s *Service) Update(ctx context.Context, kind Kind, id uuid.UUID, req EntityRequest) (any, error) {
	name, slug, err := normalizeRequest(kind, req)
	if err != nil {
		return nil, err
	}

	model := newModel(kind, id, keyFor(kind, name, slug), name)
	columns := []string{"name"}
	if kind.KeyedBySlug() {
		columns = append(columns, "slug")
	}

	found, err := s.repo.Update(ctx, model, columns...)
	if err != nil {
		return nil, s.mapWriteErr(kind, err)
	}
	if !found {
		return nil, apperror.NewNotFound(kind.Label(), id.String())
	}
	return model, nil
}

// Delete removes an entity and unlinks it from every movie.
func (s *Service) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, newModel(kind, id, "", ""))
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewNotFound(kind.Label(), id.String())
	}
	s.log.Info("entity deleted", slog.String("kind", string(kind)), slog.String("id", id.String()))
	return nil
}

func (s *Service) mapWriteErr(kind Kind, err error) error {
	if errors.Is(err, apperror.ErrDuplicate) {
		return apperror.NewDuplicate(fmt.Sprintf("%s already exists", kind.Label()))
	}
	return err
}

func normalizeRequest(kind Kind, req EntityRequest) (name, slug string, err error) {
	name = strings.TrimSpace(req.Name)
	slug = strings.TrimSpace(req.Slug)
	if name == "" {
		return "", "", apperror.ErrValidation.WithMessage("name is required")
	}
	if kind.KeyedBySlug() && slug == "" {
		return "", "", apperror.ErrValidation.WithMessage("slug is required")
	}
	return name, slug, nil
}

func keyFor(kind Kind, name, slug string) string {
	if kind.KeyedBySlug() {
		return slug
	}
	return name
}
