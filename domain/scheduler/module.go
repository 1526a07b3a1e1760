package scheduler

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/importer"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

const importTaskName = "movie_import"

// Module provides scheduled task functionality
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

// TaskParams contains dependencies for creating scheduled tasks
type TaskParams struct {
	fx.In
	Scheduler *Scheduler
	Pipeline  *importer.Pipeline
	Cfg       *config.Config
	Log       *slog.Logger
}

// RegisterTasks registers the scheduled import when IMPORT_SCHEDULE is set.
// An invalid expression fails startup.
func RegisterTasks(p TaskParams) error {
	if p.Cfg.Import.Schedule == "" {
		p.Log.Info("IMPORT_SCHEDULE not set, scheduled import disabled", logger.Scope("scheduler"))
		return nil
	}

	task := NewImportTask(p.Pipeline, func() []string {
		return importer.FilesFromConfig(p.Cfg.Import)
	}, p.Log)

	return p.Scheduler.AddCronTask(importTaskName, p.Cfg.Import.Schedule, task.Run)
}

// RegisterSchedulerLifecycle starts the scheduler with the app when it has
// tasks.
func RegisterSchedulerLifecycle(lc fx.Lifecycle, scheduler *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if len(scheduler.ListTasks()) == 0 {
				return nil
			}
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}
