package backend

import (
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/metrics"
)

// Module exposes the backend client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Transport http.RoundTripper `optional:"true"`
	Metrics   *metrics.Recorder `optional:"true"`
}

func newClient(p clientParams) (Client, error) {
	opts := Options{
		Timeout:   p.Config.RequestTimeout,
		Rate:      p.Config.RequestRate,
		Transport: p.Transport,
	}
	if p.Metrics != nil {
		opts.Recorder = p.Metrics
	}
	return NewHTTPClient(p.Config.APIBaseURL, p.Logger, opts)
}
