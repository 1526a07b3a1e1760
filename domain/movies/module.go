package movies

import (
	"go.uber.org/fx"
)

// Module provides the movie domain
var Module = fx.Module("movies",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
