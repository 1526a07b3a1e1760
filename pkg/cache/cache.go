// Package cache provides a small JSON cache used for read-heavy listings.
// Redis backs it when REDIS_URL is set; otherwise every lookup misses.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/metrics"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

var Module = fx.Module("cache",
	fx.Provide(NewCache),
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Cache stores opaque byte values with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NewCache returns a Redis cache when configured, otherwise a no-op cache.
func NewCache(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (Cache, error) {
	log = log.With(logger.Scope("cache"))

	if !cfg.Cache.IsEnabled() {
		log.Info("cache disabled")
		return Noop{}, nil
	}

	opts, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// Reads fall back to the database, so a missing Redis is not fatal.
				log.Warn("redis ping failed", logger.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	log.Info("redis cache enabled", slog.String("addr", opts.Addr))
	return &Redis{client: client}, nil
}

// Redis is a Cache backed by go-redis.
type Redis struct {
	client redis.Cmdable
}

// NewRedis wraps an existing client.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }

// Remember returns the cached JSON value for key, or calls load, stores its
// result and returns it. Cache errors never fail the call.
func Remember[T any](ctx context.Context, c Cache, namespace, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	fullKey := namespace + ":" + key

	if raw, err := c.Get(ctx, fullKey); err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			metrics.CacheLookups.WithLabelValues(namespace, metrics.ResultHit).Inc()
			return v, nil
		}
		metrics.CacheLookups.WithLabelValues(namespace, metrics.ResultError).Inc()
	} else if errors.Is(err, ErrMiss) {
		metrics.CacheLookups.WithLabelValues(namespace, metrics.ResultMiss).Inc()
	} else {
		metrics.CacheLookups.WithLabelValues(namespace, metrics.ResultError).Inc()
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if raw, err := json.Marshal(v); err == nil {
		_ = c.Set(ctx, fullKey, raw, ttl)
	}
	return v, nil
}
