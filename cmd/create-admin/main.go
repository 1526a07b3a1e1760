// Command create-admin creates the admin account, or promotes an existing
// account with the same email. Running it twice is harmless.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/users"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/database"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

const defaultAdminEmail = "admin@phimmoi.com"

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	log := logger.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	email := flag.String("email", firstNonEmpty(cfg.Admin.Email, defaultAdminEmail), "admin email")
	password := flag.String("password", cfg.Admin.Password, "admin password, used only when the account is new")
	name := flag.String("name", cfg.Admin.Name, "display name")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -password <password> [-email admin@phimmoi.com] [-name Admin]")
		os.Exit(2)
	}

	ctx := context.Background()

	pool, err := database.OpenPool(ctx, cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	db := database.OpenBun(pool, cfg.Database, log)
	defer db.Close()

	svc := users.NewService(
		users.NewRepository(db, log),
		auth.NewPasswordHasher(cfg),
		auth.NewTokenManager(cfg),
		log,
	)

	created, err := svc.EnsureAdmin(ctx, *email, *password, *name)
	if err != nil {
		log.Error("failed to create admin", logger.Error(err))
		os.Exit(1)
	}

	if created {
		fmt.Printf("Admin account created: %s\n", *email)
	} else {
		fmt.Printf("Admin account already present: %s\n", *email)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
