package guide

import "go.uber.org/fx"

// Module exposes the guide pipeline via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
