package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/metrics"
	"github.com/polkiloo/posdocs/internal/server/http/handlers"
	"github.com/polkiloo/posdocs/internal/storage"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade  handlers.Facade
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Recorder `optional:"true"`
	Storage storage.Backend   `optional:"true"`
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Logger, Options{
		AllowedOrigins: p.Config.CORSAllowedOrigins,
		Metrics:        p.Metrics,
		Health:         p.Storage,
	})
}
