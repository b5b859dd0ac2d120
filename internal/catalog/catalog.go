// Package catalog holds the immutable pricing tables used by the quote calculator.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies a family of selectable options.
type Kind string

const (
	KindMaterial Kind = "material"
	KindCoating  Kind = "coating"
	KindFinish   Kind = "finish"
	KindColor    Kind = "color"
	KindAddon    Kind = "addon"
)

// Entry is any option that can be looked up by id.
type Entry interface {
	OptionID() string
	OptionName() string
}

// Material is a substrate with a per-unit base price.
type Material struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	BasePrice decimal.Decimal `yaml:"base_price" json:"base_price"`
}

// CoatingType is a coating grade applied as a multiplier over the base price.
type CoatingType struct {
	ID              string          `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	PriceMultiplier decimal.Decimal `yaml:"price_multiplier" json:"price_multiplier"`
}

// FinishType adds a flat amount per unit.
type FinishType struct {
	ID       string          `yaml:"id" json:"id"`
	Name     string          `yaml:"name" json:"name"`
	PriceAdd decimal.Decimal `yaml:"price_add" json:"price_add"`
}

// ColorType applies a premium multiplier over the coated price.
type ColorType struct {
	ID              string          `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	PriceMultiplier decimal.Decimal `yaml:"price_multiplier" json:"price_multiplier"`
}

// Addon is a flat per-order extra.
type Addon struct {
	ID    string          `yaml:"id" json:"id"`
	Name  string          `yaml:"name" json:"name"`
	Price decimal.Decimal `yaml:"price" json:"price"`
}

// BulkTier maps an inclusive quantity range to a discount fraction.
// A zero Max means the tier has no upper bound.
type BulkTier struct {
	Min      int             `yaml:"min" json:"min"`
	Max      int             `yaml:"max,omitempty" json:"max,omitempty"`
	Discount decimal.Decimal `yaml:"discount" json:"discount"`
}

// Contains reports whether quantity falls inside the tier.
func (t BulkTier) Contains(quantity int) bool {
	return quantity >= t.Min && (t.Max == 0 || quantity <= t.Max)
}

// BundleDiscount applies when every required add-on is selected.
type BundleDiscount struct {
	Name              string          `yaml:"name" json:"name"`
	RequiredOptionIDs []string        `yaml:"required_option_ids" json:"required_option_ids"`
	Discount          decimal.Decimal `yaml:"discount" json:"discount"`
}

// SeasonalDiscount is a promo code. Codes match case-insensitively.
type SeasonalDiscount struct {
	Code     string          `yaml:"code" json:"code"`
	Discount decimal.Decimal `yaml:"discount" json:"discount"`
}

// EarlyBird configures the discount for orders booked well ahead of time.
type EarlyBird struct {
	Discount decimal.Decimal `yaml:"discount" json:"discount"`
	LeadDays int             `yaml:"lead_days" json:"lead_days"`
}

func (m Material) OptionID() string      { return m.ID }
func (m Material) OptionName() string    { return m.Name }
func (c CoatingType) OptionID() string   { return c.ID }
func (c CoatingType) OptionName() string { return c.Name }
func (f FinishType) OptionID() string    { return f.ID }
func (f FinishType) OptionName() string  { return f.Name }
func (c ColorType) OptionID() string     { return c.ID }
func (c ColorType) OptionName() string   { return c.Name }
func (a Addon) OptionID() string         { return a.ID }
func (a Addon) OptionName() string       { return a.Name }

// Spec is the serializable form of a catalog. It is what gets decoded from
// YAML, accepted by the admin API and stored per version.
type Spec struct {
	Materials     []Material         `yaml:"materials" json:"materials"`
	Coatings      []CoatingType      `yaml:"coatings" json:"coatings"`
	Finishes      []FinishType       `yaml:"finishes" json:"finishes"`
	Colors        []ColorType        `yaml:"colors" json:"colors"`
	Addons        []Addon            `yaml:"addons" json:"addons"`
	BulkTiers     []BulkTier         `yaml:"bulk_tiers" json:"bulk_tiers"`
	Bundles       []BundleDiscount   `yaml:"bundles" json:"bundles"`
	SeasonalCodes []SeasonalDiscount `yaml:"seasonal_codes" json:"seasonal_codes"`
	SizeRate      decimal.Decimal    `yaml:"size_rate" json:"size_rate"`
	EarlyBird     EarlyBird          `yaml:"early_bird" json:"early_bird"`
}

// Catalog is a validated, read-only view over a Spec. It is safe for
// concurrent use; nothing mutates it after New returns.
type Catalog struct {
	spec Spec

	materials map[string]Material
	coatings  map[string]CoatingType
	finishes  map[string]FinishType
	colors    map[string]ColorType
	addons    map[string]Addon
	seasonal  map[string]SeasonalDiscount
	tiers     []BulkTier
}

// New validates spec and builds a catalog from a private copy of it.
func New(spec Spec) (*Catalog, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}

	spec = spec.clone()
	c := &Catalog{
		spec:      spec,
		materials: index(spec.Materials),
		coatings:  index(spec.Coatings),
		finishes:  index(spec.Finishes),
		colors:    index(spec.Colors),
		addons:    index(spec.Addons),
		seasonal:  make(map[string]SeasonalDiscount, len(spec.SeasonalCodes)),
		tiers:     append([]BulkTier(nil), spec.BulkTiers...),
	}
	for _, s := range spec.SeasonalCodes {
		c.seasonal[normalizeCode(s.Code)] = s
	}
	sort.Slice(c.tiers, func(i, j int) bool { return c.tiers[i].Min < c.tiers[j].Min })
	return c, nil
}

func index[T Entry](items []T) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		m[item.OptionID()] = item
	}
	return m
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Material returns the material with the given id.
func (c *Catalog) Material(id string) (Material, bool) {
	m, ok := c.materials[id]
	return m, ok
}

// Coating returns the coating type with the given id.
func (c *Catalog) Coating(id string) (CoatingType, bool) {
	v, ok := c.coatings[id]
	return v, ok
}

// Finish returns the finish type with the given id.
func (c *Catalog) Finish(id string) (FinishType, bool) {
	v, ok := c.finishes[id]
	return v, ok
}

// Color returns the color type with the given id.
func (c *Catalog) Color(id string) (ColorType, bool) {
	v, ok := c.colors[id]
	return v, ok
}

// Addon returns the add-on with the given id.
func (c *Catalog) Addon(id string) (Addon, bool) {
	v, ok := c.addons[id]
	return v, ok
}

// Lookup resolves an id of the given kind. A miss is a normal result.
func (c *Catalog) Lookup(kind Kind, id string) (Entry, bool) {
	var (
		e  Entry
		ok bool
	)
	switch kind {
	case KindMaterial:
		e, ok = c.Material(id)
	case KindCoating:
		e, ok = c.Coating(id)
	case KindFinish:
		e, ok = c.Finish(id)
	case KindColor:
		e, ok = c.Color(id)
	case KindAddon:
		e, ok = c.Addon(id)
	}
	if !ok {
		return nil, false
	}
	return e, true
}

// TierFor returns the bulk tier covering quantity, or the lowest tier when
// none matches.
func (c *Catalog) TierFor(quantity int) BulkTier {
	for _, t := range c.tiers {
		if t.Contains(quantity) {
			return t
		}
	}
	return c.tiers[0]
}

// MatchBundle returns the first bundle, in declaration order, whose required
// options are all selected.
func (c *Catalog) MatchBundle(selected map[string]struct{}) (BundleDiscount, bool) {
	for _, b := range c.spec.Bundles {
		if containsAll(selected, b.RequiredOptionIDs) {
			return b, true
		}
	}
	return BundleDiscount{}, false
}

func containsAll(selected map[string]struct{}, required []string) bool {
	for _, id := range required {
		if _, ok := selected[id]; !ok {
			return false
		}
	}
	return true
}

// MatchSeasonal resolves a promo code, ignoring case and surrounding space.
func (c *Catalog) MatchSeasonal(code string) (SeasonalDiscount, bool) {
	key := normalizeCode(code)
	if key == "" {
		return SeasonalDiscount{}, false
	}
	s, ok := c.seasonal[key]
	return s, ok
}

// SizeRate is the price per cubic inch per unit.
func (c *Catalog) SizeRate() decimal.Decimal { return c.spec.SizeRate }

// EarlyBird returns the early-bird settings.
func (c *Catalog) EarlyBird() EarlyBird { return c.spec.EarlyBird }

// Spec returns a copy of the underlying spec.
func (c *Catalog) Spec() Spec { return c.spec.clone() }

func (s Spec) clone() Spec {
	out := s
	out.Materials = append([]Material(nil), s.Materials...)
	out.Coatings = append([]CoatingType(nil), s.Coatings...)
	out.Finishes = append([]FinishType(nil), s.Finishes...)
	out.Colors = append([]ColorType(nil), s.Colors...)
	out.Addons = append([]Addon(nil), s.Addons...)
	out.BulkTiers = append([]BulkTier(nil), s.BulkTiers...)
	out.SeasonalCodes = append([]SeasonalDiscount(nil), s.SeasonalCodes...)
	out.Bundles = make([]BundleDiscount, len(s.Bundles))
	for i, b := range s.Bundles {
		b.RequiredOptionIDs = append([]string(nil), b.RequiredOptionIDs...)
		out.Bundles[i] = b
	}
	return out
}
