package phimapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDetail = `{
  "status": true,
  "msg": "",
  "movie": {
    "_id": "abc",
    "name": "Phim A",
    "slug": "phim-a",
    "origin_name": "Movie A",
    "type": "series",
    "time": "45 phút/tập",
    "year": 2023,
    "view": 120,
    "actor": ["Actor 1", " Actor 2 "],
    "director": [""],
    "category": [{"id": "c1", "name": "Hành Động", "slug": "hanh-dong"}],
    "country": [{"id": "k1", "name": "Hàn Quốc", "slug": "han-quoc"}],
    "tmdb": {"type": "tv", "id": 12345, "season": null, "vote_average": 7.5, "vote_count": 10},
    "imdb": {"id": null},
    "created": {"time": "2024-01-02T03:04:05.000Z"},
    "modified": {"time": "2024-02-02T03:04:05.000Z"}
  },
  "episodes": [
    {"server_name": "Vietsub #1", "server_data": [
      {"name": "Tập 01", "slug": "tap-01", "filename": "f1", "link_embed": "e1", "link_m3u8": "m1"}
    ]}
  ]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_MovieDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/phim/phim-a":
			_, _ = w.Write([]byte(sampleDetail))
		case "/phim/gone":
			_, _ = w.Write([]byte(`{"status": false, "msg": "Movie not found"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, discardLogger())

	detail, err := c.MovieDetail(context.Background(), "phim-a")
	require.NoError(t, err)
	assert.Equal(t, "Phim A", detail.Movie.Name)
	assert.Equal(t, FlexString("12345"), detail.Movie.TMDB.ID)
	assert.Nil(t, detail.Movie.TMDB.Season)
	assert.Empty(t, detail.Movie.IMDB.ID)
	require.Len(t, detail.Episodes, 1)
	assert.Equal(t, "tap-01", detail.Episodes[0].ServerData[0].Slug)

	tests := []struct {
		name string
		slug string
	}{
		{"status false", "gone"},
		{"http 404", "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.MovieDetail(context.Background(), tt.slug)
			assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
		})
	}

	assert.Equal(t, "closed", c.State(), "not-found answers do not trip the breaker")
}

func TestClient_BreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, FailureThreshold: 2, BreakerTimeout: time.Minute}, discardLogger())

	for i := 0; i < 2; i++ {
		_, err := c.MovieDetail(context.Background(), "x")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnavailable))
	}

	_, err := c.MovieDetail(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, "open", c.State())
}

func TestClient_ContextCancelled(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0"}, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.MovieDetail(ctx, "x")
	assert.Error(t, err)
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		in   string
		want FlexString
	}{
		{`"tt123"`, "tt123"},
		{`456`, "456"},
		{`null`, ""},
		{`7.5`, "7.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FlexString
			require.NoError(t, f.UnmarshalJSON([]byte(tt.in)))
			assert.Equal(t, tt.want, f)
		})
	}

	var f FlexString
	assert.Error(t, f.UnmarshalJSON([]byte(`{}`)))
}

func TestTimestamp_Parse(t *testing.T) {
	ts := Timestamp{Time: "2024-01-02T03:04:05.000Z"}
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ts.Parse().UTC())
	assert.True(t, Timestamp{}.Parse().IsZero())
	assert.True(t, Timestamp{Time: "yesterday"}.Parse().IsZero())
}

func TestDecodeFile(t *testing.T) {
	records, err := DecodeFile([]byte("[" + sampleDetail + "]"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "phim-a", records[0].Movie.Slug)

	_, err = DecodeFile([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}
