package importer

import (
	"log/slog"

	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
)

// Module provides the import pipeline to the server (scheduled imports).
var Module = fx.Module("importer",
	fx.Provide(NewPipelineFromConfig),
)

// NewPipelineFromConfig builds a pipeline over the application database.
func NewPipelineFromConfig(db bun.IDB, cfg *config.Config, log *slog.Logger) *Pipeline {
	return NewPipeline(NewBunStore(db), OptionsFromConfig(cfg.Import), log)
}
