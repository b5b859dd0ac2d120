// Package app provides startup seeding of stored state.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/coating-service/config"
	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/service"
)

const bootstrapTimeout = 30 * time.Second

// Bootstrap seeds roles and the admin account, activates the newest catalog
// and imports posts. Failures are logged; the service still starts.
func Bootstrap(cfg config.Config, sc *ServiceComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	if err := initializeAccess(ctx, sc.Access, sc.Auth, cfg.Auth); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize roles and admin account")
	}
	if err := initializeCatalog(ctx, sc.Catalogs, cfg.Pricing.CatalogFile); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize catalog - pricing with the seed catalog")
	}
	if err := importPosts(ctx, sc.Blog, cfg.Content.PostsDir); err != nil {
		log.Warn().Err(err).Msg("Failed to import posts")
	}
}

// initializeAccess upserts the default roles and makes sure the configured
// admin account exists.
func initializeAccess(ctx context.Context, access service.AccessService, auth service.AuthService, cfg config.AuthConfig) error {
	if access == nil {
		return nil
	}
	if err := access.SeedRoles(ctx); err != nil {
		return err
	}
	if auth == nil || cfg.AdminEmail == "" {
		return nil
	}
	if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("ensure admin %s: %w", cfg.AdminEmail, err)
	}
	log.Info().Str("email", cfg.AdminEmail).Msg("Admin account ready")
	return nil
}

// initializeCatalog activates the newest stored catalog. When file is set
// and its content differs from the active version it is published.
func initializeCatalog(ctx context.Context, catalogs service.CatalogService, file string) error {
	if catalogs == nil {
		return nil
	}
	if err := catalogs.Load(ctx); err != nil {
		if errors.Is(err, service.ErrRepositoryNotConfigured) {
			return nil
		}
		return err
	}
	if file != "" {
		cat, err := catalog.LoadFile(file)
		if err != nil {
			return err
		}
		if _, err := catalogs.Publish(ctx, cat.Spec(), "file:"+file); err != nil {
			return fmt.Errorf("publish %s: %w", file, err)
		}
	}
	if snap := catalogs.Snapshot(); snap != nil {
		log.Info().Int("version", snap.Version).Str("checksum", snap.Checksum).Msg("Catalog active")
	}
	return nil
}

// importPosts saves every markdown file in dir.
func importPosts(ctx context.Context, blog service.BlogService, dir string) error {
	if blog == nil || dir == "" {
		return nil
	}
	n, err := blog.ImportDir(ctx, dir)
	if err != nil {
		return err
	}
	log.Info().Int("posts", n).Str("dir", dir).Msg("Posts imported")
	return nil
}
