package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/posdocs/internal/delivery"
	"github.com/polkiloo/posdocs/internal/metrics"
	"github.com/polkiloo/posdocs/internal/server/http/handlers"
	"github.com/polkiloo/posdocs/internal/server/http/middleware"
)

// Options carry the optional parts of the surface.
type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.Recorder
	Health         handlers.HealthChecker
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.Facade, logger *slog.Logger, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(opts.AllowedOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{delivery.BlobPath})))

	sessionHandler := handlers.NewSessionHandler(facade)
	documentHandler := handlers.NewDocumentHandler(facade)
	taskHandler := handlers.NewTaskHandler(facade)
	blobHandler := handlers.NewBlobHandler(facade)
	healthHandler := handlers.NewHealthHandler(opts.Health)

	engine.GET(delivery.BlobPath+":handle", blobHandler.Serve)
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/session", sessionHandler.Current)
	api.POST("/session/login", sessionHandler.Login)
	api.POST("/session/logout", sessionHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.SessionRequired(facade))
	authed.GET("/orders/:id/actions", documentHandler.Actions)
	authed.POST("/orders/:id/documents", documentHandler.Dispatch)
	authed.GET("/orders/:id/tasks", taskHandler.ListByOrder)
	authed.GET("/orders/:id/receipt", documentHandler.Receipt)
	authed.GET("/tasks/:id", taskHandler.Get)
	authed.GET("/notifications", taskHandler.Notifications)

	return engine
}
