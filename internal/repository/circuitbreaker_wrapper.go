package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/circuitbreaker"
	"github.com/guttosm/coating-service/internal/domain/model"
)

// CountsAgainstBreaker reports whether err signals an unhealthy database.
// Constraint violations and cancelled requests do not.
func CountsAgainstBreaker(err error) bool {
	return !errors.Is(err, ErrDuplicate) && !errors.Is(err, context.Canceled)
}

// CatalogRepositoryWithCircuitBreaker guards catalog reads and writes.
type CatalogRepositoryWithCircuitBreaker struct {
	repo CatalogRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker wraps repo.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

// Active returns nil while the circuit is open so callers keep serving the
// catalog they already have.
func (r *CatalogRepositoryWithCircuitBreaker) Active(ctx context.Context) (*model.CatalogVersion, error) {
	v, err := circuitbreaker.Call(ctx, r.cb, func() (*model.CatalogVersion, error) { return r.repo.Active(ctx) })
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return v, err
}

func (r *CatalogRepositoryWithCircuitBreaker) Publish(ctx context.Context, document, checksum, createdBy string) (*model.CatalogVersion, error) {
	return circuitbreaker.Call(ctx, r.cb, func() (*model.CatalogVersion, error) {
		return r.repo.Publish(ctx, document, checksum, createdBy)
	})
}

func (r *CatalogRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.CatalogVersion, error) {
	return circuitbreaker.Call(ctx, r.cb, func() ([]model.CatalogVersion, error) { return r.repo.List(ctx, limit) })
}

func (r *CatalogRepositoryWithCircuitBreaker) FindByVersion(ctx context.Context, version int) (*model.CatalogVersion, error) {
	return circuitbreaker.Call(ctx, r.cb, func() (*model.CatalogVersion, error) { return r.repo.FindByVersion(ctx, version) })
}

// GetCircuitBreaker returns the underlying breaker for health reporting.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// QuoteRepositoryWithCircuitBreaker guards quote storage.
type QuoteRepositoryWithCircuitBreaker struct {
	repo QuoteRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewQuoteRepositoryWithCircuitBreaker wraps repo.
func NewQuoteRepositoryWithCircuitBreaker(repo QuoteRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *QuoteRepositoryWithCircuitBreaker {
	return &QuoteRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *QuoteRepositoryWithCircuitBreaker) Create(ctx context.Context, q *model.QuoteRecord) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, q) })
}

func (r *QuoteRepositoryWithCircuitBreaker) FindByReference(ctx context.Context, reference string) (*model.QuoteRecord, error) {
	return circuitbreaker.Call(ctx, r.cb, func() (*model.QuoteRecord, error) { return r.repo.FindByReference(ctx, reference) })
}

func (r *QuoteRepositoryWithCircuitBreaker) List(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, error) {
	return circuitbreaker.Call(ctx, r.cb, func() ([]model.QuoteRecord, error) { return r.repo.List(ctx, userID, limit, skip) })
}

func (r *QuoteRepositoryWithCircuitBreaker) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return circuitbreaker.Call(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, userID) })
}

func (r *QuoteRepositoryWithCircuitBreaker) UpdateStatus(ctx context.Context, reference string, from, to model.QuoteStatus) (*model.QuoteRecord, error) {
	return circuitbreaker.Call(ctx, r.cb, func() (*model.QuoteRecord, error) {
		return r.repo.UpdateStatus(ctx, reference, from, to)
	})
}

// GetCircuitBreaker returns the underlying breaker for health reporting.
func (r *QuoteRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// LogsRepositoryWithCircuitBreaker guards log persistence. Writes are
// dropped while the circuit is open; request logs are not worth failing for.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Insert(ctx context.Context, entries ...*model.LogEntry) error {
	err := r.cb.Execute(ctx, func() error { return r.repo.Insert(ctx, entries...) })
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Find(ctx context.Context, f model.LogFilter) ([]model.LogEntry, error) {
	return circuitbreaker.Call(ctx, r.cb, func() ([]model.LogEntry, error) { return r.repo.Find(ctx, f) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, f model.LogFilter) (int64, error) {
	return circuitbreaker.Call(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, f) })
}

// GetCircuitBreaker returns the underlying breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

var (
	_ CatalogRepositoryInterface = (*CatalogRepositoryWithCircuitBreaker)(nil)
	_ QuoteRepositoryInterface   = (*QuoteRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface    = (*LogsRepositoryWithCircuitBreaker)(nil)
)
