package users

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// Module provides the user domain
var Module = fx.Module("users",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(RegisterAdminBootstrap),
)

// RegisterAdminBootstrap ensures the ADMIN_EMAIL account exists when the
// server starts. Failures are logged and do not stop startup.
func RegisterAdminBootstrap(lc fx.Lifecycle, svc *Service, cfg *config.Config, log *slog.Logger) {
	if !cfg.Admin.IsConfigured() {
		return
	}
	log = log.With(logger.Scope("users.bootstrap"))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := svc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
			if err != nil {
				log.Error("admin bootstrap failed", logger.Error(err))
				return nil
			}
			log.Info("admin bootstrap complete", slog.Bool("created", created))
			return nil
		},
	})
}
