// Package app provides router configuration.
package app

import (
	"github.com/guttosm/coating-service/config"
	"github.com/guttosm/coating-service/internal/http"
	"github.com/guttosm/coating-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the health handler and router configuration from
// the services. db may be nil.
func InitializeRouter(cfg config.Config, db *DatabaseComponents, sc *ServiceComponents) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	if db != nil {
		if db.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		}
		for name, cb := range db.breakers() {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	if cfg.Server.RequestTimeout > 0 {
		routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	}

	// Interface fields stay nil unless the service exists.
	routerCfg.CatalogService = sc.Catalogs
	routerCfg.QuoteService = sc.Quotes
	routerCfg.LoggingService = sc.Logging
	routerCfg.BlogService = sc.Blog
	routerCfg.ContactService = sc.Contact
	routerCfg.AuthService = sc.Auth
	routerCfg.AccessService = sc.Access

	if sc.Auth != nil {
		size := cfg.Cache.Size
		if size <= 0 {
			size = 1000
		}
		routerCfg.Idempotency = middleware.NewIdempotencyStore(size, middleware.DefaultIdempotencyTTL)
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
