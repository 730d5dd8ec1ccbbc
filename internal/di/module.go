package di

import (
	"go.uber.org/fx"

	"github.com/polesk/storebot/internal/adapter/chat"
	"github.com/polesk/storebot/internal/app"
	"github.com/polesk/storebot/internal/bot"
	"github.com/polesk/storebot/internal/config"
	"github.com/polesk/storebot/internal/logger"
	"github.com/polesk/storebot/internal/server/http/handlers"
	"github.com/polesk/storebot/internal/server/http/router"
	"github.com/polesk/storebot/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		chat.Module,
		usecase.Module,
		fx.Provide(func(facade *app.StoreFacade) bot.Facade { return facade }),
		bot.Module,
		fx.Provide(func(r *bot.Router) handlers.EventRouter { return r }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
