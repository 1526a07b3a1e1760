// Package main is the entry point of the movie catalog API server.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/catalog"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/comments"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/episodes"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/favorites"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/health"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/importer"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/ratings"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/recommendations"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/scheduler"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/users"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/views"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/database"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/server"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/cache"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

func main() {
	// .env.local wins over .env and the process environment.
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		server.Module,
		cache.Module,
		auth.Module,

		// Domain modules
		health.Module,
		users.Module,
		catalog.Module,
		movies.Module,
		episodes.Module,
		ratings.Module,
		comments.Module,
		favorites.Module,
		views.Module,
		recommendations.Module,

		// Scheduled imports
		importer.Module,
		scheduler.Module,
	).Run()
}
