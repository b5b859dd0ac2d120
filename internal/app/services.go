// Package app provides service initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/coating-service/config"
	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/service"
	"github.com/guttosm/coating-service/internal/service/cache"
)

// ServiceComponents holds business services. Services that need the
// database are nil when it is unavailable; pricing always works from the
// in-memory catalog.
type ServiceComponents struct {
	Catalogs service.CatalogService
	Quotes   service.QuoteService
	Auth     service.AuthService
	Access   service.AccessService
	Blog     service.BlogService
	Contact  service.ContactService
	Logging  service.LoggingService

	// stoppers release cache cleanup goroutines.
	stoppers []func()
}

// InitializeServices builds the services. db may be nil.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	sc := &ServiceComponents{}

	seed := loadSeedCatalog(cfg.Pricing.CatalogFile)
	if db != nil {
		catalogs := service.NewCatalogService(db.CatalogRepo, seed)
		sc.Catalogs = catalogs
		sc.Quotes = service.NewQuoteService(catalogs, db.QuoteRepo)
	} else {
		catalogs := service.NewCatalogService(nil, seed)
		sc.Catalogs = catalogs
		sc.Quotes = service.NewQuoteService(catalogs, nil)
		return sc
	}

	sc.Logging = service.NewLoggingService(db.LogsRepo)
	sc.Contact = service.NewContactService(db.ContactRepo)

	var rendered cache.Cache[string, string]
	if cfg.Cache.Size > 0 {
		c := cache.New[string, string]("rendered_posts", cfg.Cache.Size, cfg.Cache.TTL)
		sc.stoppers = append(sc.stoppers, c.Stop)
		rendered = c
	}
	sc.Blog = service.NewBlogService(db.PostRepo, rendered, cfg.Content.SiteURL)

	if !cfg.Auth.Enabled {
		return sc
	}
	var roles cache.Cache[string, []string]
	if cfg.Cache.Size > 0 {
		// Every protected request resolves permissions, so spread the lock.
		c := cache.NewSharded[string, []string]("role_permissions", cfg.Cache.Size, cfg.Cache.TTL, permissionCacheShards)
		sc.stoppers = append(sc.stoppers, c.Stop)
		roles = c
	}
	sc.Access = service.NewAccessService(db.RoleRepo, roles)
	sc.Auth = service.NewAuthService(db.UserRepo, db.TokenRepo, cfg.Auth)
	return sc
}

const permissionCacheShards = 8

// Stop releases background resources held by the services.
func (sc *ServiceComponents) Stop() {
	for _, stop := range sc.stoppers {
		stop()
	}
	sc.stoppers = nil
}

// loadSeedCatalog reads the catalog file used when nothing is published
// yet. It falls back to the built-in catalog when path is empty or invalid.
func loadSeedCatalog(path string) *catalog.Catalog {
	if path == "" {
		return nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to load catalog file - using built-in catalog")
		return nil
	}
	log.Info().Str("file", path).Msg("Catalog file loaded")
	return cat
}
