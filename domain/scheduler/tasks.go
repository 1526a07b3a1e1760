package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/importer"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

var errImportRunning = errors.New("previous import still running")

// importRunner is satisfied by *importer.Pipeline.
type importRunner interface {
	Run(ctx context.Context, files []string) (importer.Summary, error)
}

// ImportTask re-runs the file import. Overlapping runs are skipped.
type ImportTask struct {
	pipeline importRunner
	files    func() []string
	running  atomic.Bool
	log      *slog.Logger
}

// NewImportTask creates the scheduled import task
func NewImportTask(pipeline importRunner, files func() []string, log *slog.Logger) *ImportTask {
	return &ImportTask{
		pipeline: pipeline,
		files:    files,
		log:      log.With(logger.Scope("scheduler.import")),
	}
}

// Run executes one import over the configured files
func (t *ImportTask) Run(ctx context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		t.log.Warn("skipping scheduled import, previous run still active")
		return errImportRunning
	}
	defer t.running.Store(false)

	sum, err := t.pipeline.Run(ctx, t.files())
	if err != nil {
		return err
	}
	t.log.Info("scheduled import finished",
		slog.Int("imported", sum.MoviesImported),
		slog.Int("failed", sum.MoviesFailed))
	return nil
}
