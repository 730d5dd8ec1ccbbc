package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polesk/storebot/internal/adapter/chat"
	"github.com/polesk/storebot/internal/bot"
	"github.com/polesk/storebot/internal/config"
	"github.com/polesk/storebot/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		newHTTPServer,
		newEventPump,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type pumpParams struct {
	fx.In

	Platform chat.Platform
	Router   *bot.Router
	Config   *config.Config
	Logger   *slog.Logger
}

func newEventPump(p pumpParams) *worker.EventPump {
	return worker.NewEventPump(p.Platform, p.Router, p.Config.PollTimeout, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Pump       *worker.EventPump
	Platform   chat.Platform
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			identity, err := p.Platform.WhoAmI(ctx)
			if err != nil {
				return fmt.Errorf("platform authentication failed: %w", err)
			}
			p.Logger.Info("storebot online",
				slog.String("bot", identity.Name),
				slog.String("addr", p.Server.Addr),
			)
			p.Pump.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Pump.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storebot stopped")
			return nil
		},
	})
}
