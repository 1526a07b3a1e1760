package ratings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

type key struct{ user, movie uuid.UUID }

type memStore struct {
	movies  map[uuid.UUID]bool
	ratings map[key]*Rating
}

func newMemStore(movies ...uuid.UUID) *memStore {
	m := &memStore{movies: map[uuid.UUID]bool{}, ratings: map[key]*Rating{}}
	for _, id := range movies {
		m.movies[id] = true
	}
	return m
}

func (m *memStore) MovieExists(_ context.Context, id uuid.UUID) error {
	if !m.movies[id] {
		return apperror.ErrMovieNotFound
	}
	return nil
}

func (m *memStore) Upsert(_ context.Context, r *Rating) error {
	k := key{r.UserID, r.MovieID}
	if existing, ok := m.ratings[k]; ok {
		existing.Score = r.Score
		existing.Review = r.Review
		existing.UpdatedAt = time.Now()
		*r = *existing
		return nil
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	cp := *r
	m.ratings[k] = &cp
	return nil
}

func (m *memStore) GetWithUser(_ context.Context, id uuid.UUID) (*Rating, error) {
	for _, r := range m.ratings {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, errRatingNotFound
}

func (m *memStore) ListByMovie(_ context.Context, movieID uuid.UUID, _ pagination.Params) ([]Rating, int, error) {
	var out []Rating
	for _, r := range m.ratings {
		if r.MovieID == movieID {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (m *memStore) Stats(_ context.Context, movieID uuid.UUID) (Stats, error) {
	var st Stats
	sum := 0
	for _, r := range m.ratings {
		if r.MovieID == movieID {
			sum += r.Score
			st.TotalRatings++
		}
	}
	if st.TotalRatings > 0 {
		st.AverageScore = float64(sum) / float64(st.TotalRatings)
	}
	return st, nil
}

func (m *memStore) Delete(_ context.Context, userID, movieID uuid.UUID) (bool, error) {
	k := key{userID, movieID}
	if _, ok := m.ratings[k]; !ok {
		return false, nil
	}
	delete(m.ratings, k)
	return true, nil
}

func newTestService(store store) *Service {
	return &Service{repo: store, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestService_Rate(t *testing.T) {
	movie := uuid.New()
	userA, userB := uuid.New(), uuid.New()
	ctx := context.Background()

	t.Run("rejects out of range scores without writing", func(t *testing.T) {
		store := newMemStore(movie)
		svc := newTestService(store)
		for _, score := range []int{0, 6, -1} {
			_, err := svc.Rate(ctx, userA, movie, &RateRequest{Score: score})
			assert.True(t, errors.Is(err, apperror.ErrValidation), "score %d", score)
		}
		assert.Empty(t, store.ratings)
	})

	t.Run("missing movie", func(t *testing.T) {
		svc := newTestService(newMemStore())
		_, err := svc.Rate(ctx, userA, movie, &RateRequest{Score: 4})
		assert.True(t, errors.Is(err, apperror.ErrMovieNotFound))
	})

	t.Run("second rating replaces the first", func(t *testing.T) {
		store := newMemStore(movie)
		svc := newTestService(store)

		first, err := svc.Rate(ctx, userA, movie, &RateRequest{Score: 2})
		require.NoError(t, err)
		review := "  better on rewatch "
		second, err := svc.Rate(ctx, userA, movie, &RateRequest{Score: 5, Review: &review})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 5, second.Score)
		require.NotNil(t, second.Review)
		assert.Equal(t, "better on rewatch", *second.Review)
		assert.Len(t, store.ratings, 1)

		_, err = svc.Rate(ctx, userB, movie, &RateRequest{Score: 4})
		require.NoError(t, err)

		page, err := svc.List(ctx, movie, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalRatings)
		assert.InDelta(t, 4.5, page.AverageScore, 0.001)
		assert.Equal(t, 2, page.Pagination.Total)
	})
}

func TestService_ListEmpty(t *testing.T) {
	movie := uuid.New()
	svc := newTestService(newMemStore(movie))

	page, err := svc.List(context.Background(), movie, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, page.AverageScore)
	assert.Zero(t, page.TotalRatings)

	_, err = svc.List(context.Background(), uuid.New(), pagination.Params{Page: 1, Limit: 10})
	assert.True(t, errors.Is(err, apperror.ErrMovieNotFound))
}

func TestService_Delete(t *testing.T) {
	movie, user := uuid.New(), uuid.New()
	svc := newTestService(newMemStore(movie))
	ctx := context.Background()

	err := svc.Delete(ctx, user, movie)
	assert.True(t, errors.Is(err, errRatingNotFound))

	_, err = svc.Rate(ctx, user, movie, &RateRequest{Score: 3})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, user, movie))
}
