package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/metrics"
	"github.com/guttosm/coating-service/internal/repository"
)

var (
	// ErrQuoteNotFound is returned when a reference does not exist or is not visible to the caller.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrInvalidTransition is returned when a quote cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid quote status transition")
)

// maxReferenceAttempts bounds retries when a generated reference collides.
const maxReferenceAttempts = 3

// Viewer identifies who is reading a quote.
type Viewer struct {
	UserID primitive.ObjectID
	Admin  bool
}

// CanSee reports whether the viewer may read q.
func (v Viewer) CanSee(q *model.QuoteRecord) bool {
	return v.Admin || (!v.UserID.IsZero() && q.UserID == v.UserID)
}

// QuoteService prices, saves and reviews quotes.
type QuoteService interface {
	Estimate(ctx context.Context, req model.QuoteRequest) (model.PriceBreakdown, error)
	Submit(ctx context.Context, userID primitive.ObjectID, req model.QuoteRequest) (*model.QuoteRecord, error)
	Get(ctx context.Context, reference string, viewer Viewer) (*model.QuoteRecord, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, int64, error)
	ListAll(ctx context.Context, limit, skip int) ([]model.QuoteRecord, int64, error)
	UpdateStatus(ctx context.Context, reference string, status model.QuoteStatus) (*model.QuoteRecord, error)
}

// QuoteServiceImpl implements QuoteService.
type QuoteServiceImpl struct {
	catalogs CatalogService
	repo     repository.QuoteRepositoryInterface
	refs     *ReferenceGenerator
	now      func() time.Time
}

// QuoteServiceOption configures a QuoteServiceImpl.
type QuoteServiceOption func(*QuoteServiceImpl)

// WithReferenceGenerator replaces the reference generator.
func WithReferenceGenerator(g *ReferenceGenerator) QuoteServiceOption {
	return func(s *QuoteServiceImpl) {
		if g != nil {
			s.refs = g
		}
	}
}

// WithQuoteClock replaces the clock used for record timestamps.
func WithQuoteClock(now func() time.Time) QuoteServiceOption {
	return func(s *QuoteServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// NewQuoteService creates a new quote service. repo may be nil, in which
// case only Estimate is available.
func NewQuoteService(catalogs CatalogService, repo repository.QuoteRepositoryInterface, opts ...QuoteServiceOption) *QuoteServiceImpl {
	s := &QuoteServiceImpl{
		catalogs: catalogs,
		repo:     repo,
		refs:     NewReferenceGenerator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Estimate prices req against the active catalog. Unknown ids price as zero.
func (s *QuoteServiceImpl) Estimate(_ context.Context, req model.QuoteRequest) (model.PriceBreakdown, error) {
	return s.calculate(s.catalogs.Snapshot().Estimator, req)
}

// Submit prices req strictly and saves it under a new reference.
func (s *QuoteServiceImpl) Submit(ctx context.Context, userID primitive.ObjectID, req model.QuoteRequest) (*model.QuoteRecord, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	snap := s.catalogs.Snapshot()
	breakdown, err := s.calculate(snap.Strict, req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &model.QuoteRecord{
		UserID:         userID,
		Request:        req,
		Breakdown:      breakdown,
		Status:         model.QuoteStatusSubmitted,
		CatalogVersion: snap.Version,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for attempt := 1; ; attempt++ {
		record.ID = primitive.NilObjectID
		record.Reference = s.refs.Next()
		err = s.repo.Create(ctx, record)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) || attempt == maxReferenceAttempts {
			return nil, fmt.Errorf("save quote: %w", err)
		}
		log.Debug().Str("reference", record.Reference).Int("attempt", attempt).Msg("Quote reference collided, retrying")
	}

	metrics.RecordQuoteSubmitted(breakdown.Total.InexactFloat64())
	return record, nil
}

// Get returns a quote when the viewer owns it or is an admin.
func (s *QuoteServiceImpl) Get(ctx context.Context, reference string, viewer Viewer) (*model.QuoteRecord, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	q, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find quote: %w", err)
	}
	// quotes owned by someone else look the same as missing ones
	if q == nil || !viewer.CanSee(q) {
		return nil, ErrQuoteNotFound
	}
	return q, nil
}

// ListByUser returns the user's quotes, newest first, with the total count.
func (s *QuoteServiceImpl) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, int64, error) {
	if userID.IsZero() {
		return []model.QuoteRecord{}, 0, nil
	}
	return s.list(ctx, userID, limit, skip)
}

// ListAll returns every quote, newest first, with the total count.
func (s *QuoteServiceImpl) ListAll(ctx context.Context, limit, skip int) ([]model.QuoteRecord, int64, error) {
	return s.list(ctx, primitive.NilObjectID, limit, skip)
}

func (s *QuoteServiceImpl) list(ctx context.Context, userID primitive.ObjectID, limit, skip int) ([]model.QuoteRecord, int64, error) {
	if s.repo == nil {
		return nil, 0, ErrRepositoryNotConfigured
	}
	quotes, err := s.repo.List(ctx, userID, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}
	return quotes, total, nil
}

// UpdateStatus moves a submitted quote to accepted or rejected.
func (s *QuoteServiceImpl) UpdateStatus(ctx context.Context, reference string, status model.QuoteStatus) (*model.QuoteRecord, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if status != model.QuoteStatusAccepted && status != model.QuoteStatusRejected {
		return nil, fmt.Errorf("%w: to %q", ErrInvalidTransition, status)
	}

	q, err := s.repo.UpdateStatus(ctx, reference, model.QuoteStatusSubmitted, status)
	if err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	if q != nil {
		return q, nil
	}

	existing, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find quote: %w", err)
	}
	if existing == nil {
		return nil, ErrQuoteNotFound
	}
	return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, existing.Status, status)
}

func (s *QuoteServiceImpl) calculate(calc QuoteCalculator, req model.QuoteRequest) (model.PriceBreakdown, error) {
	start := time.Now()
	b, err := calc.Calculate(req)
	switch {
	case err == nil:
		metrics.RecordQuoteCalculation(time.Since(start), "success")
		metrics.RecordDiscounts(discountKinds(b))
	case errors.Is(err, ErrIncompleteQuote):
		metrics.RecordQuoteCalculation(time.Since(start), "incomplete")
	case errors.Is(err, ErrUnknownOption):
		metrics.RecordQuoteCalculation(time.Since(start), "unknown_option")
	default:
		metrics.RecordQuoteCalculation(time.Since(start), "error")
	}
	return b, err
}

// discountKinds names the discounts that reduced the total.
func discountKinds(b model.PriceBreakdown) []string {
	var kinds []string
	if b.BulkDiscount.IsPositive() {
		kinds = append(kinds, "bulk")
	}
	if b.BundleDiscount.IsPositive() {
		kinds = append(kinds, "bundle")
	}
	if b.SeasonalDiscount.IsPositive() {
		kinds = append(kinds, "seasonal")
	}
	if b.EarlyBirdDiscount.IsPositive() {
		kinds = append(kinds, "early_bird")
	}
	return kinds
}
