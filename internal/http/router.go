package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/coating-service/internal/metrics"
	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	// Idempotency enables Idempotency-Key replays on protected writes.
	Idempotency *middleware.IdempotencyStore

	LoggingService service.LoggingService
	AuthService    service.AuthService
	AccessService  service.AccessService
	QuoteService   service.QuoteService
	CatalogService service.CatalogService
	BlogService    service.BlogService
	ContactService service.ContactService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
		MaxBodyBytes:   middleware.DefaultMaxBodyBytes,
	}
}

// NewRouter creates and configures the Gin router for the coating service.
// Routes behind JWT are only registered when both AuthService and
// AccessService are set.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")

	quoteRoutes := NewQuoteRoutes(&cfg)
	contentRoutes := NewContentRoutes(&cfg)
	for _, g := range []PublicRouteGroup{quoteRoutes, contentRoutes} {
		g.RegisterPublicRoutes(api)
	}

	if cfg.AuthService == nil || cfg.AccessService == nil {
		return router
	}

	authRoutes := NewAuthRoutes(cfg.AuthService, cfg.LoggingService)
	authRoutes.RegisterPublicRoutes(api)

	protected := authRoutes.ProtectedGroup(api, &cfg)
	for _, g := range []ProtectedRouteGroup{authRoutes, quoteRoutes, contentRoutes} {
		g.RegisterProtectedRoutes(protected, &cfg)
	}
	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Compression(),
		middleware.BodyLimit(cfg.MaxBodyBytes),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
