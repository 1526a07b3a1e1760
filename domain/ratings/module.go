package ratings

import "go.uber.org/fx"

// Module provides the rating domain
var Module = fx.Module("ratings",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
