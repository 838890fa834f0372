package delivery

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/adapter/backend"
	"github.com/polkiloo/posdocs/internal/adapter/events"
	"github.com/polkiloo/posdocs/internal/adapter/opener"
	"github.com/polkiloo/posdocs/internal/adapter/printer"
	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/domain/repository"
	"github.com/polkiloo/posdocs/internal/metrics"
	"github.com/polkiloo/posdocs/internal/notify"
	"github.com/polkiloo/posdocs/internal/pkg/auth"
	"github.com/polkiloo/posdocs/internal/worker"
)

// Module provides the object URL registry and the delivery adapter.
var Module = fx.Provide(newObjectURLs, newAdapter)

func newObjectURLs(cfg *config.Config, signer auth.Signer) *ObjectURLs {
	return NewObjectURLs(cfg.PublicURL, signer)
}

type adapterParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Client    backend.Client
	URLs      *ObjectURLs
	Opener    opener.Opener
	Printer   printer.Printer
	Runner    *worker.Runner
	Tasks     repository.TaskRepository
	Publisher events.Publisher
	Feed      *notify.Feed
	Metrics   *metrics.Recorder `optional:"true"`
}

func newAdapter(p adapterParams) *Adapter {
	deps := Deps{
		Fetcher:   p.Client,
		URLs:      p.URLs,
		Opener:    p.Opener,
		Printer:   p.Printer,
		Runner:    p.Runner,
		Tasks:     p.Tasks,
		Publisher: p.Publisher,
		Notifier:  p.Feed,
		Logger:    p.Logger,
	}
	if p.Metrics != nil {
		deps.Recorder = p.Metrics
	}
	return New(deps, Options{DownloadDir: p.Config.DownloadDir})
}
