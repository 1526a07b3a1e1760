// Package fetcher downloads upstream movie details for a slug list and
// writes them as import files.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/phimapi"
)

const (
	DefaultWorkers = 20
	DefaultPerFile = 200
)

var fileName = regexp.MustCompile(`^movie_details_(\d+)\.json$`)

// DetailSource is satisfied by *phimapi.Client.
type DetailSource interface {
	MovieDetail(ctx context.Context, slug string) (*phimapi.MovieDetail, error)
}

// Options tunes a fetch run.
type Options struct {
	OutDir  string
	Workers int
	PerFile int
}

// Summary is the outcome of a fetch run.
type Summary struct {
	Requested    int
	Skipped      int
	Fetched      int
	Failed       int
	FilesWritten int
}

// Fetcher downloads details concurrently and batches them into files.
type Fetcher struct {
	src  DetailSource
	opts Options
	log  *slog.Logger

	mu        sync.Mutex
	buf       []phimapi.MovieDetail
	nextIndex int
	sum       Summary
}

// New creates a fetcher. Non-positive Workers and PerFile use the defaults.
func New(src DetailSource, opts Options, log *slog.Logger) *Fetcher {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.PerFile <= 0 {
		opts.PerFile = DefaultPerFile
	}
	return &Fetcher{
		src:  src,
		opts: opts,
		log:  log.With(logger.Scope("fetcher")),
	}
}

// ScanExisting returns the slugs already present in dir's import files and
// the highest file index found. Unreadable files are logged and ignored.
func ScanExisting(dir string, log *slog.Logger) (map[string]struct{}, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]struct{}{}, 0, nil
		}
		return nil, 0, err
	}

	slugs := make(map[string]struct{})
	maxIndex := 0
	for _, e := range entries {
		m := fileName.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxIndex {
			maxIndex = n
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Warn("failed to read existing file", slog.String("file", e.Name()), logger.Error(err))
			continue
		}
		details, err := phimapi.DecodeFile(data)
		if err != nil {
			log.Warn("failed to decode existing file", slog.String("file", e.Name()), logger.Error(err))
			continue
		}
		for _, d := range details {
			if d.Movie.Slug != "" {
				slugs[d.Movie.Slug] = struct{}{}
			}
		}
	}
	return slugs, maxIndex, nil
}

// Run fetches every slug of items not already on disk. Per-slug failures are
// counted; only file writes and cancellation abort the run.
func (f *Fetcher) Run(ctx context.Context, items []phimapi.ListItem) (Summary, error) {
	if err := os.MkdirAll(f.opts.OutDir, 0o755); err != nil {
		return Summary{}, err
	}

	done, maxIndex, err := ScanExisting(f.opts.OutDir, f.log)
	if err != nil {
		return Summary{}, err
	}

	f.sum = Summary{Requested: len(items)}
	f.nextIndex = maxIndex + 1
	f.buf = nil

	pending := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := done[it.Slug]; ok || it.Slug == "" {
			f.sum.Skipped++
			continue
		}
		done[it.Slug] = struct{}{}
		pending = append(pending, it.Slug)
	}

	f.log.Info("fetch started",
		slog.Int("pending", len(pending)),
		slog.Int("skipped", f.sum.Skipped),
		slog.Int("next_file", f.nextIndex))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Workers)
	for _, slug := range pending {
		if gctx.Err() != nil {
			break
		}
		slug := slug
		g.Go(func() error {
			return f.fetchOne(gctx, slug)
		})
	}
	runErr := g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.flushLocked(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr == nil {
		runErr = ctx.Err()
	}

	f.log.Info("fetch completed",
		slog.Int("fetched", f.sum.Fetched),
		slog.Int("failed", f.sum.Failed),
		slog.Int("files_written", f.sum.FilesWritten))
	return f.sum, runErr
}

func (f *Fetcher) fetchOne(ctx context.Context, slug string) error {
	detail, err := f.src.MovieDetail(ctx, slug)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.sum.Failed++
		f.log.Warn("failed to fetch movie", slog.String("slug", slug), logger.Error(err))
		return nil
	}

	f.sum.Fetched++
	f.buf = append(f.buf, *detail)
	if len(f.buf) >= f.opts.PerFile {
		return f.flushLocked()
	}
	return nil
}

func (f *Fetcher) flushLocked() error {
	if len(f.buf) == 0 {
		return nil
	}
	path := filepath.Join(f.opts.OutDir, fmt.Sprintf("movie_details_%d.json", f.nextIndex))

	data, err := json.MarshalIndent(f.buf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	f.log.Info("saved movies", slog.String("file", path), slog.Int("count", len(f.buf)))
	f.buf = nil
	f.nextIndex++
	f.sum.FilesWritten++
	return nil
}
