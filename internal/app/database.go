// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/coating-service/config"
	"github.com/guttosm/coating-service/internal/circuitbreaker"
	"github.com/guttosm/coating-service/internal/repository"
)

// DatabaseComponents holds the MongoDB connection and its repositories.
// Catalog, quote and log writes go through circuit breakers.
type DatabaseComponents struct {
	DB *repository.MongoDB

	CatalogRepo repository.CatalogRepositoryInterface
	QuoteRepo   repository.QuoteRepositoryInterface
	LogsRepo    repository.LogsRepositoryInterface
	UserRepo    repository.UserRepositoryInterface
	RoleRepo    repository.RoleRepositoryInterface
	TokenRepo   repository.TokenRepositoryInterface
	PostRepo    repository.PostRepositoryInterface
	ContactRepo repository.ContactRepositoryInterface

	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
	QuoteCircuitBreaker   *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	return newDatabaseComponents(db, cfg)
}

func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig) *DatabaseComponents {
	catalogCB := newBreaker("mongodb-catalog", cfg)
	quoteCB := newBreaker("mongodb-quotes", cfg)
	logsCB := newBreaker("mongodb-logs", cfg)

	return &DatabaseComponents{
		DB: db,

		CatalogRepo: repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), catalogCB),
		QuoteRepo:   repository.NewQuoteRepositoryWithCircuitBreaker(repository.NewQuoteRepository(db), quoteCB),
		LogsRepo:    repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB),
		UserRepo:    repository.NewUserRepository(db),
		RoleRepo:    repository.NewRoleRepository(db),
		TokenRepo:   repository.NewTokenRepository(db),
		PostRepo:    repository.NewPostRepository(db),
		ContactRepo: repository.NewContactRepository(db),

		CatalogCircuitBreaker: catalogCB,
		QuoteCircuitBreaker:   quoteCB,
		LogsCircuitBreaker:    logsCB,
	}
}

func newBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.CountsAgainstBreaker,
	})
}

// breakers returns the circuit breakers keyed by their health check name.
func (d *DatabaseComponents) breakers() map[string]*circuitbreaker.CircuitBreaker {
	out := make(map[string]*circuitbreaker.CircuitBreaker, 3)
	if d.CatalogCircuitBreaker != nil {
		out["mongodb_catalog"] = d.CatalogCircuitBreaker
	}
	if d.QuoteCircuitBreaker != nil {
		out["mongodb_quotes"] = d.QuoteCircuitBreaker
	}
	if d.LogsCircuitBreaker != nil {
		out["mongodb_logs"] = d.LogsCircuitBreaker
	}
	return out
}
