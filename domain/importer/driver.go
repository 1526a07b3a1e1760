package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/metrics"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/phimapi"
)

// DefaultBatchSize is the number of movies reconciled concurrently.
const DefaultBatchSize = 10

// FileResult counts the outcome of one source file.
type FileResult struct {
	Seen     int
	Imported int
	Failed   int
}

// Driver reads source files and reconciles their records in fixed-size
// batches. Members of a batch run concurrently; batches run in order.
type Driver struct {
	reconciler *Reconciler
	batchSize  int
	now        func() time.Time
	log        *slog.Logger
}

// NewDriver creates a batch driver. A non-positive batchSize uses
// DefaultBatchSize.
func NewDriver(reconciler *Reconciler, batchSize int, log *slog.Logger) *Driver {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Driver{
		reconciler: reconciler,
		batchSize:  batchSize,
		now:        time.Now,
		log:        log.With(logger.Scope("importer.driver")),
	}
}

// ReadFile loads and decodes one source file.
func ReadFile(path string) ([]phimapi.MovieDetail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := phimapi.DecodeFile(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// ProcessFile reconciles every record of path. onImported is called after
// each successful movie. It returns an error only when the file cannot be
// read or ctx is cancelled; per-movie failures are counted and logged.
func (d *Driver) ProcessFile(ctx context.Context, path string, onImported func()) (FileResult, error) {
	details, err := ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}
	return d.Process(ctx, details, onImported)
}

// Process reconciles already decoded records.
func (d *Driver) Process(ctx context.Context, details []phimapi.MovieDetail, onImported func()) (FileResult, error) {
	res := FileResult{Seen: len(details)}

	for start := 0; start < len(details); start += d.batchSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(start+d.batchSize, len(details))

		imported, failed := d.runBatch(ctx, details[start:end], onImported)
		res.Imported += imported
		res.Failed += failed
	}
	return res, nil
}

func (d *Driver) runBatch(ctx context.Context, batch []phimapi.MovieDetail, onImported func()) (imported, failed int) {
	started := time.Now()
	defer func() {
		metrics.ImportBatchDuration.Observe(time.Since(started).Seconds())
	}()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	now := d.now()

	for _, detail := range batch {
		detail := detail
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := d.reconcileOne(ctx, detail, now)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				metrics.ImportMovies.WithLabelValues(metrics.ResultFailed).Inc()
				return
			}
			imported++
			metrics.ImportMovies.WithLabelValues(metrics.ResultImported).Inc()
			if onImported != nil {
				onImported()
			}
		}()
	}
	wg.Wait()
	return imported, failed
}

func (d *Driver) reconcileOne(ctx context.Context, detail phimapi.MovieDetail, now time.Time) error {
	rec, err := Normalize(detail, now)
	if err != nil {
		d.log.Warn("skipping malformed movie",
			slog.String("movie", detail.Movie.Name),
			logger.Error(err))
		return err
	}

	if err := d.reconciler.Reconcile(ctx, rec); err != nil {
		d.log.Error("failed to import movie",
			slog.String("movie", rec.DisplayName()),
			slog.String("slug", rec.Movie.Slug),
			logger.Error(err))
		return err
	}
	return nil
}
