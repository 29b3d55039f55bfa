package bootstrap

import (
	"library-reserve/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads the environment-backed configuration once and shares it
// across every other module.
var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)
