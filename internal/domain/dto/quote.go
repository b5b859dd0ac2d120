package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/model"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DiscountLine is one applied discount.
type DiscountLine struct {
	Name   string `json:"name" example:"Bulk discount (10%)"`
	Amount string `json:"amount" example:"50.00"`
}

// BreakdownResponse is a priced quote with every amount formatted to cents.
//
// @Description Itemized quote price
type BreakdownResponse struct {
	Base              string         `json:"base" example:"500.00"`
	Coating           string         `json:"coating" example:"0.00"`
	Finish            string         `json:"finish" example:"0.00"`
	Size              string         `json:"size" example:"0.00"`
	ColorPremium      string         `json:"color_premium" example:"0.00"`
	Addons            string         `json:"addons" example:"0.00"`
	Subtotal          string         `json:"subtotal" example:"500.00"`
	BulkDiscount      string         `json:"bulk_discount" example:"50.00"`
	BundleDiscount    string         `json:"bundle_discount" example:"0.00"`
	SeasonalDiscount  string         `json:"seasonal_discount" example:"0.00"`
	EarlyBirdDiscount string         `json:"early_bird_discount" example:"0.00"`
	TotalDiscount     string         `json:"total_discount" example:"50.00"`
	Total             string         `json:"total" example:"450.00"`
	Savings           string         `json:"savings" example:"50.00"`
	AppliedDiscounts  []DiscountLine `json:"applied_discounts"`
} // @name BreakdownResponse

// NewBreakdownResponse formats b for the API.
func NewBreakdownResponse(b model.PriceBreakdown) BreakdownResponse {
	lines := make([]DiscountLine, 0, len(b.AppliedDiscounts))
	for _, d := range b.AppliedDiscounts {
		lines = append(lines, DiscountLine{Name: d.Name, Amount: money(d.Amount)})
	}
	return BreakdownResponse{
		Base:              money(b.Base),
		Coating:           money(b.Coating),
		Finish:            money(b.Finish),
		Size:              money(b.Size),
		ColorPremium:      money(b.ColorPremium),
		Addons:            money(b.Addons),
		Subtotal:          money(b.Subtotal),
		BulkDiscount:      money(b.BulkDiscount),
		BundleDiscount:    money(b.BundleDiscount),
		SeasonalDiscount:  money(b.SeasonalDiscount),
		EarlyBirdDiscount: money(b.EarlyBirdDiscount),
		TotalDiscount:     money(b.TotalDiscount()),
		Total:             money(b.Total),
		Savings:           money(b.Savings()),
		AppliedDiscounts:  lines,
	}
}

// EstimateResponse is the result of pricing a quote without saving it.
type EstimateResponse struct {
	Breakdown      BreakdownResponse `json:"breakdown"`
	CatalogVersion int               `json:"catalog_version" example:"3"`
} // @name EstimateResponse

// DraftResponse is the form state after a step, with a running estimate
// once the required selections are made.
//
// @Description Quote form state
type DraftResponse struct {
	Draft    DraftState         `json:"draft"`
	NextStep string             `json:"next_step,omitempty" example:"dimensions"`
	Missing  []string           `json:"missing,omitempty" example:"coating.type,color.type"`
	Estimate *BreakdownResponse `json:"estimate,omitempty"`
} // @name DraftResponse

// QuoteResponse is a saved quote.
//
// @Description Saved quote
type QuoteResponse struct {
	Reference      string             `json:"reference" example:"QT-LZ3K9M2A-7QX"`
	Status         string             `json:"status" example:"submitted"`
	CatalogVersion int                `json:"catalog_version" example:"3"`
	Request        model.QuoteRequest `json:"request"`
	Breakdown      BreakdownResponse  `json:"breakdown"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
} // @name QuoteResponse

// NewQuoteResponse converts a stored quote for the API.
func NewQuoteResponse(q *model.QuoteRecord) QuoteResponse {
	return QuoteResponse{
		Reference:      q.Reference,
		Status:         string(q.Status),
		CatalogVersion: q.CatalogVersion,
		Request:        q.Request,
		Breakdown:      NewBreakdownResponse(q.Breakdown),
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

// NewQuoteResponses converts a page of stored quotes.
func NewQuoteResponses(quotes []model.QuoteRecord) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, NewQuoteResponse(&quotes[i]))
	}
	return out
}

// CatalogResponse is the active catalog.
//
// @Description Active pricing catalog
type CatalogResponse struct {
	Version  int          `json:"version" example:"3"`
	Checksum string       `json:"checksum" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	Catalog  catalog.Spec `json:"catalog"`
} // @name CatalogResponse

// Page is a slice of results with the total number of matches.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total" example:"42"`
	Limit int   `json:"limit" example:"20"`
	Skip  int   `json:"skip" example:"0"`
}

// NewPage builds a page, replacing a nil slice with an empty one.
func NewPage[T any](items []T, total int64, q PageQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Limit: q.Limit, Skip: q.Skip}
}
