//go:build !integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/coating-service/config"
	"github.com/guttosm/coating-service/internal/circuitbreaker"
	"github.com/guttosm/coating-service/internal/repository"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	assert.Nil(t, InitializeDatabase(config.DatabaseConfig{Enabled: false}))
}

func TestNewBreaker(t *testing.T) {
	cb := newBreaker("mongodb-test", config.DatabaseConfig{
		CircuitBreakerFailureThreshold: 1,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          time.Minute,
	})
	assert.Equal(t, "mongodb-test", cb.Name())

	// A constraint violation is an answer from a healthy database.
	_ = cb.Execute(context.Background(), func() error { return repository.ErrDuplicate })
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())

	_ = cb.Execute(context.Background(), func() error { return errors.New("connection refused") })
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())
}

func TestDatabaseComponents_Breakers(t *testing.T) {
	cfg := config.DatabaseConfig{CircuitBreakerFailureThreshold: 5, CircuitBreakerTimeout: time.Second}
	db := &DatabaseComponents{
		CatalogCircuitBreaker: newBreaker("mongodb-catalog", cfg),
		LogsCircuitBreaker:    newBreaker("mongodb-logs", cfg),
	}

	breakers := db.breakers()
	assert.Len(t, breakers, 2)
	assert.Contains(t, breakers, "mongodb_catalog")
	assert.Contains(t, breakers, "mongodb_logs")
	assert.NotContains(t, breakers, "mongodb_quotes")
}
