package importer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/catalog"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
)

type linkKey struct {
	kind    catalog.Kind
	movieID uuid.UUID
	key     string
}

// memStore is an in-memory Store with the same idempotency guarantees as
// the database.
type memStore struct {
	mu       sync.Mutex
	movies   map[string]*movies.Movie
	entities map[catalog.Kind]map[string]string
	links    map[linkKey]struct{}
	episodes map[uuid.UUID]map[string]episodes.Episode

	delay       time.Duration
	failSlug    string
	failEntity  string
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newMemStore() *memStore {
	return &memStore{
		movies:   make(map[string]*movies.Movie),
		entities: make(map[catalog.Kind]map[string]string),
		links:    make(map[linkKey]struct{}),
		episodes: make(map[uuid.UUID]map[string]episodes.Episode),
	}
}

func (s *memStore) UpsertMovie(ctx context.Context, m *movies.Movie) (uuid.UUID, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		cur := s.maxInFlight.Load()
		if n <= cur || s.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return uuid.Nil, ctx.Err()
		}
	}
	if m.Slug == s.failSlug {
		return uuid.Nil, errBoom
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.movies[m.Slug]; ok {
		view := max(existing.View, m.View)
		id := existing.ID
		cp := *m
		cp.ID, cp.View = id, view
		s.movies[m.Slug] = &cp
		return id, nil
	}
	cp := *m
	cp.ID = uuid.New()
	s.movies[m.Slug] = &cp
	return cp.ID, nil
}

func (s *memStore) UpsertEntity(_ context.Context, kind catalog.Kind, key, name string) error {
	if key == s.failEntity {
		return errBoom
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entities[kind] == nil {
		s.entities[kind] = make(map[string]string)
	}
	if _, ok := s.entities[kind][key]; ok && !kind.KeyedBySlug() {
		return nil
	}
	s.entities[kind][key] = name
	return nil
}

func (s *memStore) LinkEntity(_ context.Context, kind catalog.Kind, movieID uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[linkKey{kind, movieID, key}] = struct{}{}
	return nil
}

func (s *memStore) UpsertEpisode(_ context.Context, ep *episodes.Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.episodes[ep.MovieID] == nil {
		s.episodes[ep.MovieID] = make(map[string]episodes.Episode)
	}
	s.episodes[ep.MovieID][ep.Slug] = *ep
	return nil
}

func (s *memStore) movie(slug string) *movies.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movies[slug]
}

func (s *memStore) linkCount(kind catalog.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.links {
		if k.kind == kind {
			n++
		}
	}
	return n
}
