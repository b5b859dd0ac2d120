package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/model"
)

// Discount kinds, in the order they are applied.
const (
	DiscountBulk      = "bulk"
	DiscountBundle    = "bundle"
	DiscountSeasonal  = "seasonal"
	DiscountEarlyBird = "early_bird"
)

var hundred = decimal.NewFromInt(100)

// DiscountInput is what the evaluator needs from a quote.
type DiscountInput struct {
	Subtotal      decimal.Decimal
	Quantity      int
	Addons        map[string]struct{}
	PromoCode     string
	EstimatedDate *time.Time
	RushOrder     bool
	Now           time.Time
}

// Discounts holds each discount amount and the labelled lines that were
// applied, in evaluation order.
type Discounts struct {
	Bulk      decimal.Decimal
	Bundle    decimal.Decimal
	Seasonal  decimal.Decimal
	EarlyBird decimal.Decimal
	Applied   []model.AppliedDiscount
	Kinds     []string
}

// Total is the sum of all discount amounts.
func (d Discounts) Total() decimal.Decimal {
	return decimal.Sum(d.Bulk, d.Bundle, d.Seasonal, d.EarlyBird)
}

// EvaluateDiscounts computes bulk, bundle, promo and early-bird discounts.
// Every discount is a fraction of the same subtotal; none compounds on
// another.
func EvaluateDiscounts(cat *catalog.Catalog, in DiscountInput) Discounts {
	var out Discounts
	apply := func(kind, label string, fraction decimal.Decimal) decimal.Decimal {
		if !fraction.IsPositive() {
			return decimal.Zero
		}
		amount := roundMoney(in.Subtotal.Mul(fraction))
		out.Applied = append(out.Applied, model.AppliedDiscount{
			Name:   fmt.Sprintf("%s (%s%%)", label, percent(fraction)),
			Amount: amount,
		})
		out.Kinds = append(out.Kinds, kind)
		return amount
	}

	tier := cat.TierFor(in.Quantity)
	out.Bulk = apply(DiscountBulk, "Bulk discount", tier.Discount)

	if b, ok := cat.MatchBundle(in.Addons); ok {
		out.Bundle = apply(DiscountBundle, b.Name, b.Discount)
	}

	if s, ok := cat.MatchSeasonal(in.PromoCode); ok {
		out.Seasonal = apply(DiscountSeasonal, "Promo "+s.Code, s.Discount)
	}

	if eb := cat.EarlyBird(); qualifiesForEarlyBird(in, eb.LeadDays) {
		out.EarlyBird = apply(DiscountEarlyBird, "Early-bird", eb.Discount)
	}

	return out
}

func qualifiesForEarlyBird(in DiscountInput, leadDays int) bool {
	if in.EstimatedDate == nil || in.RushOrder {
		return false
	}
	cutoff := in.Now.Add(time.Duration(leadDays) * 24 * time.Hour)
	return in.EstimatedDate.After(cutoff)
}

func percent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).String()
}
