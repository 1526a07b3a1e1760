// Command clear-data deletes every row of the catalog and user tables.
// It refuses to run without -yes.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// tables in foreign-key order: children first.
var tables = []string{
	"comments",
	"ratings",
	"favorites",
	"episodes",
	"movie_actors",
	"movie_directors",
	"movie_categories",
	"movie_countries",
	"movies",
	"actors",
	"directors",
	"categories",
	"countries",
	"users",
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	yes := flag.Bool("yes", false, "confirm deleting all data")
	flag.Parse()

	if !*yes {
		fmt.Fprintln(os.Stderr, "clear-data deletes ALL movies, users and engagement data. Re-run with -yes to confirm.")
		os.Exit(2)
	}

	log := logger.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Database.DSN())))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	if err := clearAll(context.Background(), db, log); err != nil {
		log.Error("failed to clear data", logger.Error(err))
		os.Exit(1)
	}
	fmt.Println("All data has been cleared")
}

func clearAll(ctx context.Context, db *bun.DB, log *slog.Logger) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range tables {
			res, err := tx.NewDelete().TableExpr("?", bun.Ident(table)).Where("TRUE").Exec(ctx)
			if err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
			n, _ := res.RowsAffected()
			log.Info("table cleared", slog.String("table", table), slog.Int64("rows", n))
		}
		return nil
	})
}
