package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/catalog"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
)

// Store is the persistence the importer writes through. Every method is a
// single idempotent statement.
type Store interface {
	UpsertMovie(ctx context.Context, m *movies.Movie) (uuid.UUID, error)
	UpsertEntity(ctx context.Context, kind catalog.Kind, key, name string) error
	LinkEntity(ctx context.Context, kind catalog.Kind, movieID uuid.UUID, key string) error
	UpsertEpisode(ctx context.Context, ep *episodes.Episode) error
}

// movieUpdateColumns are overwritten on re-import. view is merged with
// GREATEST so the counter never goes down.
var movieUpdateColumns = []string{
	"name", "origin_name", "content", "type", "status",
	"poster_url", "thumb_url", "trailer_url",
	"is_copyright", "sub_docquyen", "chieurap",
	"time", "duration", "episode_current", "episode_total",
	"quality", "lang", "notify", "showtimes", "year",
	"tmdb_id", "tmdb_type", "tmdb_season", "tmdb_vote_average", "tmdb_vote_count",
	"imdb_id", "updated_at",
}

// BunStore implements Store on a bun database.
type BunStore struct {
	db bun.IDB
}

// NewBunStore creates a Store backed by db
func NewBunStore(db bun.IDB) *BunStore {
	return &BunStore{db: db}
}

// UpsertMovie inserts or refreshes a movie by slug and returns its id.
func (s *BunStore) UpsertMovie(ctx context.Context, m *movies.Movie) (uuid.UUID, error) {
	q := s.db.NewInsert().
		Model(m).
		On("CONFLICT (slug) DO UPDATE")
	for _, col := range movieUpdateColumns {
		q = q.Set(col + " = EXCLUDED." + col)
	}

	var id uuid.UUID
	err := q.Set("view = GREATEST(m.view, EXCLUDED.view)").
		Returning("m.id").
		Scan(ctx, &id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert movie %q: %w", m.Slug, err)
	}
	return id, nil
}

// UpsertEntity ensures a shared entity row exists.
func (s *BunStore) UpsertEntity(ctx context.Context, kind catalog.Kind, key, name string) error {
	return catalog.Upsert(ctx, s.db, kind, key, name)
}

// LinkEntity ensures a movie association row exists.
func (s *BunStore) LinkEntity(ctx context.Context, kind catalog.Kind, movieID uuid.UUID, key string) error {
	return catalog.Link(ctx, s.db, kind, movieID, key)
}

// UpsertEpisode inserts or refreshes an episode by (movie_id, slug).
func (s *BunStore) UpsertEpisode(ctx context.Context, ep *episodes.Episode) error {
	if err := episodes.Upsert(ctx, s.db, ep); err != nil {
		return fmt.Errorf("upsert episode %q: %w", ep.Slug, err)
	}
	return nil
}
