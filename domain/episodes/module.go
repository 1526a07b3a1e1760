package episodes

import (
	"go.uber.org/fx"
)

// Module provides the episode domain
var Module = fx.Module("episodes",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
