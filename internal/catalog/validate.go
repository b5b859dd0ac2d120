package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrInvalidCatalog wraps every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

var one = decimal.NewFromInt(1)

// Validate checks the structural rules a catalog must satisfy before it can
// price quotes. All problems are reported together.
func Validate(spec Spec) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(spec.Materials) == 0 {
		add("at least one material is required")
	}
	if len(spec.BulkTiers) == 0 {
		add("at least one bulk tier is required")
	}

	checkIDs(KindMaterial, spec.Materials, add)
	checkIDs(KindCoating, spec.Coatings, add)
	checkIDs(KindFinish, spec.Finishes, add)
	checkIDs(KindColor, spec.Colors, add)
	checkIDs(KindAddon, spec.Addons, add)

	for _, m := range spec.Materials {
		if m.BasePrice.IsNegative() {
			add("material %q: base price must not be negative", m.ID)
		}
	}
	for _, c := range spec.Coatings {
		if c.PriceMultiplier.LessThan(one) {
			add("coating %q: multiplier must be >= 1", c.ID)
		}
	}
	for _, f := range spec.Finishes {
		if f.PriceAdd.IsNegative() {
			add("finish %q: price add must not be negative", f.ID)
		}
	}
	for _, c := range spec.Colors {
		if c.PriceMultiplier.LessThan(one) {
			add("color %q: multiplier must be >= 1", c.ID)
		}
	}
	for _, a := range spec.Addons {
		if a.Price.IsNegative() {
			add("addon %q: price must not be negative", a.ID)
		}
	}
	if spec.SizeRate.IsNegative() {
		add("size rate must not be negative")
	}
	if spec.EarlyBird.LeadDays < 0 {
		add("early bird lead days must not be negative")
	}

	checkTiers(spec.BulkTiers, add)

	addons := make(map[string]struct{}, len(spec.Addons))
	for _, a := range spec.Addons {
		addons[a.ID] = struct{}{}
	}
	for _, b := range spec.Bundles {
		if b.Name == "" {
			add("bundle name is required")
		}
		if len(b.RequiredOptionIDs) == 0 {
			add("bundle %q: requires at least one option", b.Name)
		}
		for _, id := range b.RequiredOptionIDs {
			if _, ok := addons[id]; !ok {
				add("bundle %q: unknown addon %q", b.Name, id)
			}
		}
	}

	codes := make(map[string]struct{}, len(spec.SeasonalCodes))
	for _, s := range spec.SeasonalCodes {
		key := normalizeCode(s.Code)
		if key == "" {
			add("seasonal code is required")
			continue
		}
		if _, dup := codes[key]; dup {
			add("seasonal code %q declared twice", s.Code)
		}
		codes[key] = struct{}{}
	}

	maxStack := spec.EarlyBird.Discount
	for _, t := range spec.BulkTiers {
		checkFraction(fmt.Sprintf("bulk tier %d", t.Min), t.Discount, add)
	}
	maxStack = maxStack.Add(maxOf(spec.BulkTiers, func(t BulkTier) decimal.Decimal { return t.Discount }))
	for _, b := range spec.Bundles {
		checkFraction(fmt.Sprintf("bundle %q", b.Name), b.Discount, add)
	}
	maxStack = maxStack.Add(maxOf(spec.Bundles, func(b BundleDiscount) decimal.Decimal { return b.Discount }))
	for _, s := range spec.SeasonalCodes {
		checkFraction(fmt.Sprintf("seasonal code %q", s.Code), s.Discount, add)
	}
	maxStack = maxStack.Add(maxOf(spec.SeasonalCodes, func(s SeasonalDiscount) decimal.Decimal { return s.Discount }))
	checkFraction("early bird", spec.EarlyBird.Discount, add)

	if maxStack.GreaterThanOrEqual(one) {
		add("combined maximum discount %s reaches 100%%", maxStack.String())
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}

func checkIDs[T Entry](kind Kind, items []T, add func(string, ...any)) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.OptionID()
		if id == "" {
			add("%s: id is required", kind)
			continue
		}
		if _, dup := seen[id]; dup {
			add("%s %q declared twice", kind, id)
		}
		seen[id] = struct{}{}
	}
}

func checkFraction(what string, d decimal.Decimal, add func(string, ...any)) {
	if d.IsNegative() || d.GreaterThanOrEqual(one) {
		add("%s: discount must be in [0, 1)", what)
	}
}

func checkTiers(tiers []BulkTier, add func(string, ...any)) {
	if len(tiers) == 0 {
		return
	}
	sorted := append([]BulkTier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	if sorted[0].Min != 1 {
		add("bulk tiers must start at quantity 1")
	}
	for i, t := range sorted {
		last := i == len(sorted)-1
		switch {
		case t.Max == 0 && !last:
			add("bulk tier %d: only the last tier may be unbounded", t.Min)
		case t.Max != 0 && t.Max < t.Min:
			add("bulk tier %d: max %d below min", t.Min, t.Max)
		case last && t.Max != 0:
			add("bulk tier %d: last tier must be unbounded", t.Min)
		}
		if !last && t.Max != 0 && sorted[i+1].Min != t.Max+1 {
			add("bulk tiers %d and %d are not contiguous", t.Min, sorted[i+1].Min)
		}
	}
}

func maxOf[T any](items []T, f func(T) decimal.Decimal) decimal.Decimal {
	out := decimal.Zero
	for _, item := range items {
		if v := f(item); v.GreaterThan(out) {
			out = v
		}
	}
	return out
}
