// Package phimapi fetches movie details from the upstream catalog API.
// Requests go through a token-bucket limiter and a circuit breaker so a
// struggling upstream is not hammered by the fetcher's workers.
package phimapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

const DefaultBaseURL = "https://phimapi.com"

var (
	// ErrNotFound means upstream has no movie for the slug.
	ErrNotFound = errors.New("phimapi: movie not found")
	// ErrUnavailable means the circuit breaker is rejecting requests.
	ErrUnavailable = errors.New("phimapi: upstream unavailable")
)

// Config controls the client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	FailureThreshold  uint32
	BreakerTimeout    time.Duration
}

// DefaultConfig matches the fetcher's defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 20,
		Burst:             20,
		FailureThreshold:  5,
		BreakerTimeout:    30 * time.Second,
	}
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *slog.Logger
}

// NewClient builds a client. Zero fields in cfg take their defaults.
func NewClient(cfg Config, log *slog.Logger) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = def.BreakerTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	log = log.With(logger.Scope("phimapi"))

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "phimapi",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, cfg.Burst),
		breaker: breaker,
		log:     log,
	}
}

// MovieDetail fetches /phim/{slug}. A response with status=false is
// reported as ErrNotFound.
func (c *Client) MovieDetail(ctx context.Context, slug string) (*MovieDetail, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.get(ctx, "/phim/"+url.PathEscape(slug))
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
		}
		return nil, err
	}

	var detail MovieDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("decode %s: %w", slug, err)
	}
	if !detail.Status || detail.Movie.Slug == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return &detail, nil
}

// State reports the breaker state for logging.
func (c *Client) State() string {
	return c.breaker.State().String()
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("phimapi: unexpected status %d for %s", resp.StatusCode, path)
	}

	return io.ReadAll(resp.Body)
}
