package bot

import "go.uber.org/fx"

// Module registers the command router for the fx runtime.
var Module = fx.Provide(NewRouter)
