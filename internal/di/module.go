package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/adapter/backend"
	"github.com/polkiloo/posdocs/internal/adapter/events"
	"github.com/polkiloo/posdocs/internal/adapter/opener"
	"github.com/polkiloo/posdocs/internal/adapter/printer"
	"github.com/polkiloo/posdocs/internal/app"
	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/delivery"
	"github.com/polkiloo/posdocs/internal/logger"
	"github.com/polkiloo/posdocs/internal/metrics"
	"github.com/polkiloo/posdocs/internal/notify"
	"github.com/polkiloo/posdocs/internal/pkg/auth"
	"github.com/polkiloo/posdocs/internal/server/http/handlers"
	"github.com/polkiloo/posdocs/internal/server/http/router"
	"github.com/polkiloo/posdocs/internal/session"
	"github.com/polkiloo/posdocs/internal/storage"
	"github.com/polkiloo/posdocs/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		events.Module,
		notify.Module,
		session.Module,
		backend.Module,
		printer.Module,
		opener.Module,
		worker.Module,
		storage.Module,
		delivery.Module,
		fx.Provide(func(f *app.DocumentFacade) handlers.Facade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
