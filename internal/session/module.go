package session

import (
	"log/slog"
	"net/http"

	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/metrics"
	"go.uber.org/fx"
)

// Module wires the session store, provider and authenticating transport.
var Module = fx.Provide(
	newStore,
	newProvider,
	newTransport,
)

func newStore(cfg *config.Config) Store {
	return NewFileStore(cfg.SessionDir)
}

type providerParams struct {
	fx.In

	Store     Store
	Logger    *slog.Logger
	Navigator Navigator         `optional:"true"`
	Notifier  Notifier          `optional:"true"`
	Metrics   *metrics.Recorder `optional:"true"`
}

func newProvider(p providerParams) *Provider {
	var recorder TeardownRecorder
	if p.Metrics != nil {
		recorder = p.Metrics
	}
	return NewProvider(p.Store, p.Navigator, p.Notifier, recorder, p.Logger)
}

func newTransport(provider *Provider) http.RoundTripper {
	return &Transport{Base: http.DefaultTransport, Invalidator: provider}
}
