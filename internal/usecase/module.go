package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polesk/storebot/internal/adapter/chat"
	"github.com/polesk/storebot/internal/config"
	"github.com/polesk/storebot/internal/domain/model"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		model.NewSettings,
		model.NewOrderIndex,
		newCatalog,
		NewSettingsUseCase,
		newLifecycle,
		newStatus,
	),
)

func newCatalog(cfg *config.Config) *model.Catalog {
	return model.NewCatalog(cfg.Presets)
}

type lifecycleParams struct {
	fx.In

	Settings *model.Settings
	Catalog  *model.Catalog
	Index    *model.OrderIndex
	Platform chat.Platform
	Logger   *slog.Logger
}

func newLifecycle(p lifecycleParams) *LifecycleUseCase {
	return NewLifecycleUseCase(p.Settings, p.Catalog, p.Index, p.Platform, p.Logger)
}

type statusParams struct {
	fx.In

	Settings *model.Settings
	Index    *model.OrderIndex
	Platform chat.Platform
	Config   *config.Config
	Logger   *slog.Logger
}

func newStatus(p statusParams) *StatusUseCase {
	return NewStatusUseCase(p.Settings, p.Index, p.Platform, p.Config.HistoryLimit, p.Logger)
}
