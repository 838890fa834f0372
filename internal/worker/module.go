package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/config"
)

// Module provides the background job runner.
var Module = fx.Provide(newRunner)

func newRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	return NewRunner(cfg.WorkerPoolSize, 0, logger)
}
