package recommendations

import "go.uber.org/fx"

// Module provides the recommendation domain
var Module = fx.Module("recommendations",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
