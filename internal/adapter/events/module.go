package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/config"
)

// Module provides the event publisher and closes it on shutdown.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		return Noop{}
	}

	pub := NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaTopic)
	p.Logger.Info("event relay enabled",
		slog.Any("brokers", p.Config.KafkaBrokers),
		slog.String("topic", p.Config.KafkaTopic),
	)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
