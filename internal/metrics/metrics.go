package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
)

var (
	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Import pipeline metrics
	ImportMovies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_movies_total",
		Help: "Movies processed by the import pipeline by result",
	}, []string{"result"})

	ImportFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_files_total",
		Help: "Source files processed by the import pipeline by result",
	}, []string{"result"})

	ImportBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "import_batch_duration_seconds",
		Help:    "Wall time to reconcile one import batch",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	// Engagement metrics
	MovieViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movie_views_total",
		Help: "View increments recorded through the API",
	})

	// Cache metrics
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by namespace and result (hit, miss, error)",
	}, []string{"namespace", "result"})
)

// Result labels
const (
	ResultImported = "imported"
	ResultFailed   = "failed"
	ResultSkipped  = "skipped"
	ResultOK       = "ok"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultError    = "error"
)

// Middleware records request counts and latency per registered route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
			}

			method := c.Request().Method
			HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func statusFromError(err error) int {
	if appErr, ok := apperror.As(err); ok {
		return appErr.HTTPStatus
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// Handler exposes the default registry for scraping.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
