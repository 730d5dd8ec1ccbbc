package chat

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polesk/storebot/internal/config"
)

// Module exposes the platform client implementation to the fx graph.
var Module = fx.Provide(newPlatform)

type platformParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPlatform(p platformParams) (Platform, error) {
	return NewHTTPPlatform(p.Config.PlatformAddress, p.Config.ChatToken, p.Logger)
}
