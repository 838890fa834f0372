// Package storage selects the task history backend.
package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/domain/repository"
	"github.com/polkiloo/posdocs/internal/storage/memory"
	"github.com/polkiloo/posdocs/internal/storage/postgres"
)

// Backend is a repository factory that can report its health.
type Backend interface {
	repository.Factory
	HealthCheck(ctx context.Context) error
}

// Module wires task storage and its repository adapters.
var Module = fx.Options(
	fx.Provide(newBackend),
	fx.Provide(func(b Backend) repository.TaskRepository { return b.Tasks() }),
)

type backendParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var openPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (*postgres.Storage, error) {
	return postgres.New(ctx, dsn, logger)
}

func newBackend(p backendParams) (Backend, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("task history kept in memory")
		return memory.New(), nil
	}

	st, err := openPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	registerLifecycle(p.Lifecycle, st)
	return st, nil
}

func registerLifecycle(lc fx.Lifecycle, storage *postgres.Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
