package service

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/model"
)

// CentimetersToInches converts a centimeter length to inches.
var CentimetersToInches = decimal.RequireFromString("0.393701")

const moneyPlaces = 2

var one = decimal.NewFromInt(1)

// lineItems are the per-line amounts before discounts, each rounded to cents.
type lineItems struct {
	base         decimal.Decimal
	coating      decimal.Decimal
	finish       decimal.Decimal
	size         decimal.Decimal
	colorPremium decimal.Decimal
	addons       decimal.Decimal
}

func (l lineItems) subtotal() decimal.Decimal {
	return decimal.Sum(l.base, l.coating, l.finish, l.size, l.colorPremium, l.addons)
}

// computeLineItems resolves the selections against cat. Ids that do not
// resolve contribute zero. Base is quantity-only; volume is priced through
// the size line.
func computeLineItems(cat *catalog.Catalog, req model.QuoteRequest) lineItems {
	qty := decimal.NewFromInt(int64(req.Quantity))

	var basePrice decimal.Decimal
	if m, ok := cat.Material(req.MaterialID); ok {
		basePrice = m.BasePrice
	}

	base := basePrice.Mul(qty)

	var coating decimal.Decimal
	if c, ok := cat.Coating(req.Coating.TypeID); ok {
		coating = basePrice.Mul(c.PriceMultiplier.Sub(one)).Mul(qty)
	}

	var finish decimal.Decimal
	if f, ok := cat.Finish(req.Coating.FinishID); ok {
		finish = f.PriceAdd.Mul(qty)
	}

	size := Volume(req.Dimensions).Mul(cat.SizeRate()).Mul(qty)

	var colorPremium decimal.Decimal
	if c, ok := cat.Color(req.Color.TypeID); ok && c.PriceMultiplier.GreaterThan(one) {
		colorPremium = base.Add(coating).Add(finish).Mul(c.PriceMultiplier.Sub(one))
	}

	var addons decimal.Decimal
	for id := range req.SelectedAddons() {
		if a, ok := cat.Addon(id); ok {
			addons = addons.Add(a.Price)
		}
	}

	return lineItems{
		base:         roundMoney(base),
		coating:      roundMoney(coating),
		finish:       roundMoney(finish),
		size:         roundMoney(size),
		colorPremium: roundMoney(colorPremium),
		addons:       roundMoney(addons),
	}
}

// Volume returns the part volume in cubic inches. Any missing or
// non-positive dimension yields zero, as do dimensions that fail Check.
func Volume(d model.Dimensions) decimal.Decimal {
	if _, err := d.Check(); err != nil {
		return decimal.Zero
	}
	if !d.Length.IsPositive() || !d.Width.IsPositive() || !d.Height.IsPositive() {
		return decimal.Zero
	}
	l, w, h := d.Length, d.Width, d.Height
	if d.Unit == model.UnitCentimeters {
		l = l.Mul(CentimetersToInches)
		w = w.Mul(CentimetersToInches)
		h = h.Mul(CentimetersToInches)
	}
	return l.Mul(w).Mul(h)
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
