package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type item struct {
	Slug string `json:"slug"`
	View int64  `json:"view"`
}

func TestRemember_LoadsOnceThenHits(t *testing.T) {
	c := newMapCache()
	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{Slug: "a", View: 3}}, nil
	}

	first, err := Remember(context.Background(), c, "popular", "p1", time.Minute, load)
	require.NoError(t, err)
	second, err := Remember(context.Background(), c, "popular", "p1", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Contains(t, c.data, "popular:p1")
}

func TestRemember_LoadErrorIsNotCached(t *testing.T) {
	c := newMapCache()
	_, err := Remember(context.Background(), c, "popular", "p1", time.Minute, func(context.Context) (int, error) {
		return 0, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
	assert.Empty(t, c.data)
}

func TestRemember_CacheErrorFallsBackToLoad(t *testing.T) {
	c := newMapCache()
	c.err = errors.New("redis: connection refused")

	v, err := Remember(context.Background(), c, "related", "x", time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Delete(context.Background(), "k"))
}
