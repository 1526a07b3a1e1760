package views

import "go.uber.org/fx"

// Module provides the view domain
var Module = fx.Module("views",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
