package reference

import "go.uber.org/fx"

// Module serves the static code lists used by the dashboard filters.
var Module = fx.Module("reference",
	fx.Provide(NewRepository),
)
