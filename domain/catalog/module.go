package catalog

import (
	"go.uber.org/fx"
)

// Module provides the catalog domain
var Module = fx.Module("catalog",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
