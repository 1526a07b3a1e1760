// Command import-movies loads upstream movie detail files into the database.
//
//	import-movies -dir data -from 1 -to 114 -batch 10
//	import-movies data/movie_details_7.json data/movie_details_8.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/importer"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/database"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/version"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	log := logger.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	dir := flag.String("dir", cfg.Import.Dir, "directory holding movie_details_N.json files")
	from := flag.Int("from", cfg.Import.FirstFile, "first file index")
	to := flag.Int("to", cfg.Import.LastFile, "last file index")
	batch := flag.Int("batch", cfg.Import.BatchSize, "movies reconciled concurrently")
	progress := flag.Int("progress", cfg.Import.ProgressEvery, "log progress every N imported movies")
	timeout := flag.Duration("movie-timeout", cfg.Import.MovieTimeout, "upper bound for one movie (0 disables)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get())
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		files = importer.DefaultFiles(*dir, cfg.Import.FilePattern, *from, *to)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, files, importer.Options{
		BatchSize:     *batch,
		ProgressEvery: *progress,
		MovieTimeout:  *timeout,
	}, log); err != nil {
		log.Error("import failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, files []string, opts importer.Options, log *slog.Logger) error {
	pool, err := database.OpenPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := database.OpenBun(pool, cfg.Database, log)
	defer db.Close()

	pipeline := importer.NewPipeline(importer.NewBunStore(db), opts, log)
	sum, err := pipeline.Run(ctx, files)
	if err != nil {
		return err
	}

	if sum.MoviesFailed > 0 || sum.FilesFailed > 0 {
		log.Warn("import finished with failures",
			slog.Int("files_failed", sum.FilesFailed),
			slog.Int("movies_failed", sum.MoviesFailed))
	}
	return nil
}
