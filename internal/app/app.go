// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/coating-service/config"
	"github.com/guttosm/coating-service/internal/http"
	"github.com/guttosm/coating-service/internal/middleware"
)

// App is the wired application: its router and the background work that
// must be stopped on shutdown.
type App struct {
	Router *gin.Engine

	closers []func()
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)
	services := InitializeServices(cfg, db)
	Bootstrap(cfg, services)

	a := &App{}
	if services.Logging != nil {
		middleware.InitAsyncLogger(services.Logging, middleware.DefaultAsyncLoggerConfig())
		a.closers = append(a.closers, middleware.StopAsyncLogger)
	}

	if db != nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		go services.Catalogs.Watch(watchCtx, cfg.Pricing.RefreshInterval)
		a.closers = append(a.closers, cancel)
	}

	routerComponents := InitializeRouter(cfg, db, services)
	a.Router = http.NewRouter(routerComponents.HealthHandler, routerComponents.Config)

	if store := routerComponents.Config.Idempotency; store != nil {
		a.closers = append(a.closers, store.Stop)
	}
	a.closers = append(a.closers, services.Stop)
	if db != nil && db.DB != nil {
		a.closers = append(a.closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.DB.Close(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to close MongoDB connection")
			}
		})
	}
	return a
}

// Close stops background work in the order it was started.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}
