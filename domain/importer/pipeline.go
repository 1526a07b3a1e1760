package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/metrics"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// DefaultProgressEvery is how many successful imports pass between
// progress log lines.
const DefaultProgressEvery = 10

// Options tunes a pipeline run.
type Options struct {
	BatchSize     int
	ProgressEvery int
	MovieTimeout  time.Duration
}

// OptionsFromConfig reads the IMPORT_* settings.
func OptionsFromConfig(cfg config.ImportConfig) Options {
	return Options{
		BatchSize:     cfg.BatchSize,
		ProgressEvery: cfg.ProgressEvery,
		MovieTimeout:  cfg.MovieTimeout,
	}
}

// Summary is the outcome of a pipeline run.
type Summary struct {
	FilesProcessed int           `json:"filesProcessed"`
	FilesFailed    int           `json:"filesFailed"`
	MoviesSeen     int           `json:"moviesSeen"`
	MoviesImported int           `json:"moviesImported"`
	MoviesFailed   int           `json:"moviesFailed"`
	Duration       time.Duration `json:"duration"`
}

// Pipeline imports a list of source files.
type Pipeline struct {
	driver        *Driver
	progressEvery int
	log           *slog.Logger
}

// NewPipeline wires a reconciler and driver over store.
func NewPipeline(store Store, opts Options, log *slog.Logger) *Pipeline {
	progress := opts.ProgressEvery
	if progress <= 0 {
		progress = DefaultProgressEvery
	}
	reconciler := NewReconciler(store, opts.MovieTimeout, log)
	return &Pipeline{
		driver:        NewDriver(reconciler, opts.BatchSize, log),
		progressEvery: progress,
		log:           log.With(logger.Scope("importer")),
	}
}

// DefaultFiles lists dir/pattern for indexes first..last, e.g.
// data/movie_details_1.json.
func DefaultFiles(dir, pattern string, first, last int) []string {
	files := make([]string, 0, max(last-first+1, 0))
	for i := first; i <= last; i++ {
		files = append(files, filepath.Join(dir, fmt.Sprintf(pattern, i)))
	}
	return files
}

// FilesFromConfig lists the configured import files.
func FilesFromConfig(cfg config.ImportConfig) []string {
	return DefaultFiles(cfg.Dir, cfg.FilePattern, cfg.FirstFile, cfg.LastFile)
}

// Run imports files in order. Unreadable files are logged and skipped. The
// only error returned is ctx's, and the summary is valid either way.
func (p *Pipeline) Run(ctx context.Context, files []string) (Summary, error) {
	started := time.Now()
	var sum Summary
	var imported atomic.Int64

	onImported := func() {
		n := imported.Add(1)
		if n%int64(p.progressEvery) == 0 {
			p.log.Info("import progress", slog.Int64("imported", n))
		}
	}

	p.log.Info("import started", slog.Int("files", len(files)))

	var runErr error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res, err := p.driver.ProcessFile(ctx, path, onImported)
		sum.MoviesSeen += res.Seen
		sum.MoviesImported += res.Imported
		sum.MoviesFailed += res.Failed

		switch {
		case err == nil:
			sum.FilesProcessed++
			metrics.ImportFiles.WithLabelValues(metrics.ResultOK).Inc()
			p.log.Debug("file imported",
				slog.String("file", path),
				slog.Int("imported", res.Imported),
				slog.Int("failed", res.Failed))
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			runErr = err
		case errors.Is(err, fs.ErrNotExist):
			sum.FilesFailed++
			metrics.ImportFiles.WithLabelValues(metrics.ResultSkipped).Inc()
			p.log.Warn("import file not found, skipping", slog.String("file", path))
		default:
			sum.FilesFailed++
			metrics.ImportFiles.WithLabelValues(metrics.ResultFailed).Inc()
			p.log.Error("failed to read import file", slog.String("file", path), logger.Error(err))
		}
		if runErr != nil {
			break
		}
	}

	sum.Duration = time.Since(started)
	p.log.Info("import completed",
		slog.Int("files_processed", sum.FilesProcessed),
		slog.Int("files_failed", sum.FilesFailed),
		slog.Int("movies_seen", sum.MoviesSeen),
		slog.Int("movies_imported", sum.MoviesImported),
		slog.Int("movies_failed", sum.MoviesFailed),
		slog.Duration("duration", sum.Duration))

	return sum, runErr
}
