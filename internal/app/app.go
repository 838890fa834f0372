package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/adapter/backend"
	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/delivery"
	"github.com/polkiloo/posdocs/internal/domain/repository"
	"github.com/polkiloo/posdocs/internal/notify"
	"github.com/polkiloo/posdocs/internal/session"
	"github.com/polkiloo/posdocs/internal/worker"
)

// Module wires the facade, the HTTP server and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newDocumentFacade,
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Client   backend.Client
	Sessions *session.Provider
	Adapter  *delivery.Adapter
	URLs     *delivery.ObjectURLs
	Tasks    repository.TaskRepository
	Feed     *notify.Feed
	Logger   *slog.Logger
}

func newDocumentFacade(p facadeParams) *DocumentFacade {
	return NewDocumentFacade(p.Client, p.Sessions, p.Adapter, p.URLs, p.Tasks, p.Feed, p.Logger)
}

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

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Runner     *worker.Runner
	Sessions   *session.Provider
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting posdocs",
				slog.String("addr", p.Server.Addr),
				slog.String("backend", p.Config.APIBaseURL),
			)
			if err := p.Sessions.Restore(ctx); err != nil {
				p.Logger.Warn("session restore failed", slog.String("error", err.Error()))
			}
			// Jobs outlive the start context.
			p.Runner.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Runner.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("posdocs stopped")
			return nil
		},
	})
}
