package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/model"
)

var (
	// ErrIncompleteQuote is returned when a required selection is missing.
	ErrIncompleteQuote = errors.New("quote cannot be calculated: required selections missing")
	// ErrUnknownOption is returned in strict mode when an id is not in the catalog.
	ErrUnknownOption = errors.New("unknown catalog option")
	// ErrInvalidDimensions is returned when a part size is out of range.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// InvalidDimensionsError names the dimension that cannot be priced.
type InvalidDimensionsError struct {
	Field string
	Err   error
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidDimensions, e.Field, e.Err)
}

func (e *InvalidDimensionsError) Is(target error) bool { return target == ErrInvalidDimensions }

func (e *InvalidDimensionsError) Unwrap() error { return e.Err }

// IncompleteQuoteError lists the selections still needed to price a quote.
type IncompleteQuoteError struct {
	Missing []string
}

func (e *IncompleteQuoteError) Error() string {
	return ErrIncompleteQuote.Error() + ": " + strings.Join(e.Missing, ", ")
}

func (e *IncompleteQuoteError) Is(target error) bool { return target == ErrIncompleteQuote }

// UnknownOptionError lists the ids that did not resolve, as "kind:id".
type UnknownOptionError struct {
	Options []string
}

func (e *UnknownOptionError) Error() string {
	return ErrUnknownOption.Error() + ": " + strings.Join(e.Options, ", ")
}

func (e *UnknownOptionError) Is(target error) bool { return target == ErrUnknownOption }

// QuoteCalculator prices quote requests against a fixed catalog.
type QuoteCalculator interface {
	Calculate(req model.QuoteRequest) (model.PriceBreakdown, error)
	Catalog() *catalog.Catalog
}

// CalculatorOption configures a QuoteCalculatorService.
type CalculatorOption func(*QuoteCalculatorService)

// QuoteCalculatorService implements QuoteCalculator. It holds no mutable
// state and is safe for concurrent use.
type QuoteCalculatorService struct {
	catalog *catalog.Catalog
	now     func() time.Time
	strict  bool
}

// NewQuoteCalculator creates a calculator bound to cat. A nil catalog
// falls back to the built-in default.
func NewQuoteCalculator(cat *catalog.Catalog, opts ...CalculatorOption) *QuoteCalculatorService {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &QuoteCalculatorService{
		catalog: cat,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithClock overrides the time source used for the early-bird window.
func WithClock(now func() time.Time) CalculatorOption {
	return func(s *QuoteCalculatorService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStrictCatalog makes unknown ids an error instead of a zero-priced line.
func WithStrictCatalog() CalculatorOption {
	return func(s *QuoteCalculatorService) {
		s.strict = true
	}
}

// Catalog returns the catalog the calculator prices against.
func (s *QuoteCalculatorService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Calculate prices req. It fails with ErrIncompleteQuote when a required
// selection is missing, with ErrInvalidDimensions when an axis or the unit
// is out of range and, in strict mode, with ErrUnknownOption when an id
// does not resolve. Otherwise unknown ids contribute nothing.
func (s *QuoteCalculatorService) Calculate(req model.QuoteRequest) (model.PriceBreakdown, error) {
	if missing := req.Missing(); len(missing) > 0 {
		return model.PriceBreakdown{}, &IncompleteQuoteError{Missing: missing}
	}
	if field, err := req.Dimensions.Check(); err != nil {
		return model.PriceBreakdown{}, &InvalidDimensionsError{Field: field, Err: err}
	}
	if s.strict {
		if unknown := UnresolvedOptions(s.catalog, req); len(unknown) > 0 {
			return model.PriceBreakdown{}, &UnknownOptionError{Options: unknown}
		}
	}

	lines := computeLineItems(s.catalog, req)
	subtotal := lines.subtotal()
	discounts := EvaluateDiscounts(s.catalog, DiscountInput{
		Subtotal:      subtotal,
		Quantity:      req.Quantity,
		Addons:        req.SelectedAddons(),
		PromoCode:     req.PromoCode,
		EstimatedDate: req.EstimatedDate,
		RushOrder:     req.RushOrder,
		Now:           s.now(),
	})

	return assemble(lines, subtotal, discounts), nil
}

// UnresolvedOptions returns every selected id that the catalog does not
// know, formatted as "kind:id". Empty selections are ignored.
func UnresolvedOptions(cat *catalog.Catalog, req model.QuoteRequest) []string {
	var unknown []string
	check := func(kind catalog.Kind, id string) {
		if id == "" {
			return
		}
		if _, ok := cat.Lookup(kind, id); !ok {
			unknown = append(unknown, fmt.Sprintf("%s:%s", kind, id))
		}
	}
	check(catalog.KindMaterial, req.MaterialID)
	check(catalog.KindCoating, req.Coating.TypeID)
	check(catalog.KindFinish, req.Coating.FinishID)
	check(catalog.KindColor, req.Color.TypeID)
	for _, id := range req.SortedAddons() {
		check(catalog.KindAddon, id)
	}
	return unknown
}

func assemble(lines lineItems, subtotal decimal.Decimal, d Discounts) model.PriceBreakdown {
	total := subtotal.Sub(d.Total())
	if total.IsNegative() {
		total = decimal.Zero
	}

	applied := make([]model.AppliedDiscount, len(d.Applied))
	copy(applied, d.Applied)

	return model.PriceBreakdown{
		Base:              lines.base,
		Coating:           lines.coating,
		Finish:            lines.finish,
		Size:              lines.size,
		ColorPremium:      lines.colorPremium,
		Addons:            lines.addons,
		Subtotal:          subtotal,
		BulkDiscount:      d.Bulk,
		BundleDiscount:    d.Bundle,
		SeasonalDiscount:  d.Seasonal,
		EarlyBirdDiscount: d.EarlyBird,
		Total:             total,
		AppliedDiscounts:  applied,
	}
}
