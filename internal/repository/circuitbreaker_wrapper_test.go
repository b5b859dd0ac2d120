package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/circuitbreaker"
	"github.com/guttosm/coating-service/internal/domain/model"
)

var errDown = errors.New("server selection timeout")

type flakyCatalogRepo struct {
	err   error
	calls int
}

func (f *flakyCatalogRepo) Active(context.Context) (*model.CatalogVersion, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyCatalogRepo) Publish(_ context.Context, doc, sum, by string) (*model.CatalogVersion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.CatalogVersion{Version: 1, Document: doc, Checksum: sum, CreatedBy: by, Active: true}, nil
}

func (f *flakyCatalogRepo) List(context.Context, int) ([]model.CatalogVersion, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyCatalogRepo) FindByVersion(context.Context, int) (*model.CatalogVersion, error) {
	f.calls++
	return nil, f.err
}

type flakyLogsRepo struct {
	err      error
	inserted int
}

func (f *flakyLogsRepo) Insert(_ context.Context, entries ...*model.LogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.inserted += len(entries)
	return nil
}

func (f *flakyLogsRepo) Find(context.Context, model.LogFilter) ([]model.LogEntry, error) {
	return nil, f.err
}

func (f *flakyLogsRepo) Count(context.Context, model.LogFilter) (int64, error) { return 0, f.err }

type dupQuoteRepo struct{ QuoteRepositoryInterface }

func (dupQuoteRepo) Create(context.Context, *model.QuoteRecord) error {
	return fmt.Errorf("%w: E11000", ErrDuplicate)
}

func newBreaker(threshold int) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "test-repo",
		IsFailure:        CountsAgainstBreaker,
	})
}

func TestCatalogRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("passes results through while closed", func(t *testing.T) {
		inner := &flakyCatalogRepo{}
		repo := NewCatalogRepositoryWithCircuitBreaker(inner, newBreaker(2))

		v, err := repo.Publish(ctx, "materials: []", "abc", "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, 1, v.Version)
	})

	t.Run("open circuit hides the active catalog instead of failing", func(t *testing.T) {
		inner := &flakyCatalogRepo{err: errDown}
		repo := NewCatalogRepositoryWithCircuitBreaker(inner, newBreaker(1))

		_, err := repo.Active(ctx)
		assert.ErrorIs(t, err, errDown)
		assert.Equal(t, circuitbreaker.StateOpen, repo.GetCircuitBreaker().State())

		v, err := repo.Active(ctx)
		assert.NoError(t, err)
		assert.Nil(t, v)
		assert.Equal(t, 1, inner.calls)

		_, err = repo.Publish(ctx, "", "", "")
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	})
}

func TestQuoteRepositoryWithCircuitBreaker_DuplicatesDoNotTrip(t *testing.T) {
	repo := NewQuoteRepositoryWithCircuitBreaker(dupQuoteRepo{}, newBreaker(1))

	for range 3 {
		err := repo.Create(context.Background(), &model.QuoteRecord{})
		assert.ErrorIs(t, err, ErrDuplicate)
	}
	assert.Equal(t, circuitbreaker.StateClosed, repo.GetCircuitBreaker().State())
}

func TestLogsRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	inner := &flakyLogsRepo{err: errDown}
	repo := NewLogsRepositoryWithCircuitBreaker(inner, newBreaker(1))

	assert.ErrorIs(t, repo.Insert(ctx, &model.LogEntry{}), errDown)
	assert.NoError(t, repo.Insert(ctx, &model.LogEntry{}), "writes are dropped while open")

	_, err := repo.Find(ctx, model.LogFilter{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestCountsAgainstBreaker(t *testing.T) {
	assert.True(t, CountsAgainstBreaker(errDown))
	assert.False(t, CountsAgainstBreaker(fmt.Errorf("%w: x", ErrDuplicate)))
	assert.False(t, CountsAgainstBreaker(context.Canceled))
}

