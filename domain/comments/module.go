package comments

import "go.uber.org/fx"

// Module provides the comment domain
var Module = fx.Module("comments",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
