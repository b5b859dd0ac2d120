package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// QuoteRoutes registers the quote and catalog endpoints.
type QuoteRoutes struct {
	quotes  *QuoteHandler
	catalog *CatalogHandler
}

// NewQuoteRoutes creates a new QuoteRoutes instance.
func NewQuoteRoutes(cfg *RouterConfig) *QuoteRoutes {
	return &QuoteRoutes{
		quotes:  NewQuoteHandler(cfg.QuoteService, cfg.CatalogService, cfg.AccessService, cfg.LoggingService),
		catalog: NewCatalogHandler(cfg.CatalogService, cfg.LoggingService),
	}
}

// RegisterPublicRoutes registers estimation, the form reducer and the catalog.
func (r *QuoteRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes/estimate", r.quotes.Estimate)
	rg.POST("/quotes/draft", r.quotes.Draft)
	rg.GET("/catalog", r.catalog.Get)
}

// RegisterProtectedRoutes registers saved quotes and catalog administration.
func (r *QuoteRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.POST("/quotes", permission(cfg, model.PermQuotesWrite), r.quotes.Submit)
	rg.GET("/quotes", permission(cfg, model.PermQuotesRead), r.quotes.ListMine)
	rg.GET("/quotes/:reference", permission(cfg, model.PermQuotesRead), r.quotes.Get)

	admin := rg.Group("/admin")
	{
		admin.GET("/quotes", permission(cfg, model.PermQuotesReview), r.quotes.ListAll)
		admin.PATCH("/quotes/:reference/status", permission(cfg, model.PermQuotesReview), r.quotes.UpdateStatus)
		admin.PUT("/catalog", permission(cfg, model.PermCatalogWrite), r.catalog.Publish)
		admin.GET("/catalog/versions", permission(cfg, model.PermCatalogWrite), r.catalog.Versions)
	}
}
