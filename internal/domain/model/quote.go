// Package model defines the core domain entities for the coating service.
package model

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DimensionUnit is the unit the customer measured the part in.
type DimensionUnit string

const (
	UnitInches      DimensionUnit = "inches"
	UnitCentimeters DimensionUnit = "cm"
)

// Dimensions of a single part.
//
// @Description Part dimensions; any missing axis prices the size line at zero
type Dimensions struct {
	Length decimal.Decimal `json:"length" bson:"length" swaggertype:"number" example:"12"`
	Width  decimal.Decimal `json:"width" bson:"width" swaggertype:"number" example:"8"`
	Height decimal.Decimal `json:"height" bson:"height" swaggertype:"number" example:"2"`
	Unit   DimensionUnit   `json:"unit" bson:"unit" enums:"inches,cm" example:"inches"`
}

// MaxDimension is the largest accepted axis, in either unit.
const MaxDimension = 10000

// MaxDimensionPlaces is the most decimal places an axis may carry.
const MaxDimensionPlaces = 4

var (
	ErrDimensionNegative    = errors.New("must not be negative")
	ErrDimensionTooLarge    = errors.New("must be at most 10000")
	ErrDimensionTooPrecise  = errors.New("must have at most 4 decimal places")
	ErrDimensionUnknownUnit = errors.New("must be inches or cm")
)

var maxDimension = decimal.NewFromInt(MaxDimension)

// maxDimensionExponent is the largest exponent a non-zero axis within
// MaxDimension can have (1e4).
const maxDimensionExponent = 4

// CheckAxis validates one axis. The exponent is checked before any
// comparison, since comparing decimals rescales them to a common exponent.
func CheckAxis(v decimal.Decimal) error {
	exp := v.Exponent()
	switch {
	case exp > maxDimensionExponent:
		return ErrDimensionTooLarge
	case exp < -MaxDimensionPlaces:
		return ErrDimensionTooPrecise
	case v.IsNegative():
		return ErrDimensionNegative
	case v.GreaterThan(maxDimension):
		return ErrDimensionTooLarge
	}
	return nil
}

// Check validates every axis and the unit. An empty unit is accepted and
// read as inches. It returns the first offending field.
func (d Dimensions) Check() (string, error) {
	for _, a := range []struct {
		field string
		value decimal.Decimal
	}{{"length", d.Length}, {"width", d.Width}, {"height", d.Height}} {
		if err := CheckAxis(a.value); err != nil {
			return a.field, err
		}
	}
	switch d.Unit {
	case "", UnitInches, UnitCentimeters:
		return "", nil
	}
	return "unit", ErrDimensionUnknownUnit
}

// CoatingSelection is the coating grade and finish chosen for the parts.
type CoatingSelection struct {
	TypeID   string `json:"type" bson:"type" example:"standard"`
	FinishID string `json:"finish" bson:"finish" example:"glossy"`
}

// ColorSelection is the color family plus free-text for custom matches.
type ColorSelection struct {
	TypeID      string `json:"type" bson:"type" example:"standard"`
	CustomColor string `json:"custom_color,omitempty" bson:"custom_color,omitempty" example:"RAL 5015"`
}

// ContactInfo is carried with the quote but never affects the price.
type ContactInfo struct {
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Company string `json:"company,omitempty" bson:"company,omitempty"`
	Notes   string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// QuoteRequest is everything the pricing engine needs to price a job.
//
// @Description Quote request collected by the multi-step form
type QuoteRequest struct {
	MaterialID    string           `json:"material" bson:"material" example:"steel"`
	Dimensions    Dimensions       `json:"dimensions" bson:"dimensions"`
	Coating       CoatingSelection `json:"coating" bson:"coating"`
	Color         ColorSelection   `json:"color" bson:"color"`
	Quantity      int              `json:"quantity" bson:"quantity" example:"10" minimum:"1"`
	AddonIDs      []string         `json:"addons,omitempty" bson:"addons,omitempty"`
	PromoCode     string           `json:"promo_code,omitempty" bson:"promo_code,omitempty" example:"HOLIDAY"`
	EstimatedDate *time.Time       `json:"estimated_date,omitempty" bson:"estimated_date,omitempty"`
	RushOrder     bool             `json:"rush_order,omitempty" bson:"rush_order,omitempty"`
	Contact       ContactInfo      `json:"contact" bson:"contact"`
} // @name QuoteRequest

// Missing lists the required selections that have not been made.
func (r QuoteRequest) Missing() []string {
	var missing []string
	if strings.TrimSpace(r.MaterialID) == "" {
		missing = append(missing, "material")
	}
	if strings.TrimSpace(r.Coating.TypeID) == "" {
		missing = append(missing, "coating.type")
	}
	if strings.TrimSpace(r.Coating.FinishID) == "" {
		missing = append(missing, "coating.finish")
	}
	if strings.TrimSpace(r.Color.TypeID) == "" {
		missing = append(missing, "color.type")
	}
	if r.Quantity < 1 {
		missing = append(missing, "quantity")
	}
	return missing
}

// SelectedAddons returns the distinct add-on ids as a set.
func (r QuoteRequest) SelectedAddons() map[string]struct{} {
	set := make(map[string]struct{}, len(r.AddonIDs))
	for _, id := range r.AddonIDs {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// SortedAddons returns the distinct add-on ids in a stable order.
func (r QuoteRequest) SortedAddons() []string {
	set := r.SelectedAddons()
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AppliedDiscount is one named discount line.
type AppliedDiscount struct {
	Name   string          `json:"name" bson:"name" example:"Bulk discount (10%)"`
	Amount decimal.Decimal `json:"amount" bson:"amount" swaggertype:"string" example:"50.00"`
}

// PriceBreakdown is the itemized result of pricing a QuoteRequest.
// Every amount is rounded to cents and Total equals Subtotal minus the
// discounts, floored at zero.
//
// @Description Itemized quote price
type PriceBreakdown struct {
	Base              decimal.Decimal   `json:"base" bson:"base" swaggertype:"string" example:"500.00"`
	Coating           decimal.Decimal   `json:"coating" bson:"coating" swaggertype:"string" example:"0.00"`
	Finish            decimal.Decimal   `json:"finish" bson:"finish" swaggertype:"string" example:"0.00"`
	Size              decimal.Decimal   `json:"size" bson:"size" swaggertype:"string" example:"0.00"`
	ColorPremium      decimal.Decimal   `json:"color_premium" bson:"color_premium" swaggertype:"string" example:"0.00"`
	Addons            decimal.Decimal   `json:"addons" bson:"addons" swaggertype:"string" example:"0.00"`
	Subtotal          decimal.Decimal   `json:"subtotal" bson:"subtotal" swaggertype:"string" example:"500.00"`
	BulkDiscount      decimal.Decimal   `json:"bulk_discount" bson:"bulk_discount" swaggertype:"string" example:"50.00"`
	BundleDiscount    decimal.Decimal   `json:"bundle_discount" bson:"bundle_discount" swaggertype:"string" example:"0.00"`
	SeasonalDiscount  decimal.Decimal   `json:"seasonal_discount" bson:"seasonal_discount" swaggertype:"string" example:"0.00"`
	EarlyBirdDiscount decimal.Decimal   `json:"early_bird_discount" bson:"early_bird_discount" swaggertype:"string" example:"0.00"`
	Total             decimal.Decimal   `json:"total" bson:"total" swaggertype:"string" example:"450.00"`
	AppliedDiscounts  []AppliedDiscount `json:"applied_discounts" bson:"applied_discounts"`
} // @name PriceBreakdown

// TotalDiscount is the sum of every discount line.
func (b PriceBreakdown) TotalDiscount() decimal.Decimal {
	return b.BulkDiscount.Add(b.BundleDiscount).Add(b.SeasonalDiscount).Add(b.EarlyBirdDiscount)
}

// Savings is what the customer saves against the undiscounted subtotal.
func (b PriceBreakdown) Savings() decimal.Decimal {
	return b.Subtotal.Sub(b.Total)
}

// QuoteStatus tracks a saved quote through review.
type QuoteStatus string

const (
	QuoteStatusSubmitted QuoteStatus = "submitted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusSubmitted, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// QuoteRecord is a persisted quote.
type QuoteRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Reference      string             `bson:"reference" json:"reference" example:"QT-LZ3K9M2A-7QX"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Request        QuoteRequest       `bson:"request" json:"request"`
	Breakdown      PriceBreakdown     `bson:"breakdown" json:"breakdown"`
	Status         QuoteStatus        `bson:"status" json:"status" example:"submitted"`
	CatalogVersion int                `bson:"catalog_version" json:"catalog_version"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
} // @name QuoteRecord
