// Command fetch-movies downloads movie details for a slug list into
// movie_details_N.json files that import-movies can load.
//
//	fetch-movies -list movie.json -out data -workers 20 -per-file 200 -rps 20
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

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/fetcher"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/version"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/phimapi"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	def := phimapi.DefaultConfig()

	list := flag.String("list", "movie.json", "JSON array of {slug} entries")
	out := flag.String("out", "data", "output directory")
	workers := flag.Int("workers", fetcher.DefaultWorkers, "concurrent requests")
	perFile := flag.Int("per-file", fetcher.DefaultPerFile, "movies per output file")
	rps := flag.Float64("rps", def.RequestsPerSecond, "upstream requests per second (0 disables the limit)")
	baseURL := flag.String("base-url", def.BaseURL, "upstream API base URL")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get())
		return
	}

	log := logger.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := def
	cfg.BaseURL = *baseURL
	cfg.RequestsPerSecond = *rps

	if err := run(ctx, *list, cfg, fetcher.Options{OutDir: *out, Workers: *workers, PerFile: *perFile}, log); err != nil {
		log.Error("fetch failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, listPath string, cfg phimapi.Config, opts fetcher.Options, log *slog.Logger) error {
	data, err := os.ReadFile(listPath)
	if err != nil {
		return err
	}
	items, err := phimapi.DecodeList(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", listPath, err)
	}

	client := phimapi.NewClient(cfg, log)
	sum, err := fetcher.New(client, opts, log).Run(ctx, items)
	if err != nil {
		return err
	}

	if sum.Failed > 0 {
		log.Warn("fetch finished with failures",
			slog.Int("failed", sum.Failed),
			slog.String("breaker", client.State()))
	}
	return nil
}
