// Package pricing derives every monetary field of a product from its composition and charges.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

const places = 2

var hundred = decimal.NewFromInt(100)

// Compute prices a composition. Line values are summed unrounded, then each output
// field is rounded to 2 decimal places on its own; making charge, legacy wastage,
// subtotal, GST and total are built from the already rounded fields.
func Compute(in model.PriceInput) model.Pricing {
	var (
		metalTotal, gemstoneTotal     = decimal.Zero, decimal.Zero
		metalWastage, gemstoneWastage = decimal.Zero, decimal.Zero
		hasPerLineWastage             = false
	)

	for _, l := range in.Metals {
		sub := metalValue(l.WeightGrams, l.PricePerGram)
		metalTotal = metalTotal.Add(sub)
		if !l.Wastage.IsZero() {
			hasPerLineWastage = true
			metalWastage = metalWastage.Add(resolve(l.Wastage, sub))
		}
	}

	for _, l := range in.Gemstones {
		sub := gemstoneValue(l.WeightCarats, l.Quantity, l.PricePerCarat)
		gemstoneTotal = gemstoneTotal.Add(sub)
		if !l.Wastage.IsZero() {
			hasPerLineWastage = true
			gemstoneWastage = gemstoneWastage.Add(resolve(l.Wastage, sub))
		}
	}

	metalTotal = metalTotal.Round(places)
	gemstoneTotal = gemstoneTotal.Round(places)

	making := resolve(in.MakingCharge, metalTotal).Round(places)

	var wastage decimal.Decimal
	if hasPerLineWastage {
		wastage = metalWastage.Add(gemstoneWastage).Round(places)
	} else {
		wastage = resolve(in.WastageCharge, metalTotal).Round(places)
	}

	other := decimal.Zero
	for _, c := range in.OtherCharges {
		other = other.Add(dec(c.Amount))
	}
	other = other.Round(places)

	subtotal := metalTotal.Add(gemstoneTotal).Add(making).Add(wastage).Add(other).Round(places)
	gst := subtotal.Mul(dec(in.GSTPercentage)).Div(hundred).Round(places)
	total := subtotal.Add(gst).Round(places)

	return model.Pricing{
		MetalTotal:          metalTotal.InexactFloat64(),
		GemstoneTotal:       gemstoneTotal.InexactFloat64(),
		MakingChargeAmount:  making.InexactFloat64(),
		WastageChargeAmount: wastage.InexactFloat64(),
		OtherChargesTotal:   other.InexactFloat64(),
		Subtotal:            subtotal.InexactFloat64(),
		GSTAmount:           gst.InexactFloat64(),
		TotalPrice:          total.InexactFloat64(),
		PerLineWastage:      hasPerLineWastage,
	}
}

// Reprice refreshes every line subtotal and all derived price fields of p in place.
func Reprice(p *model.Product) {
	for i := range p.Metals {
		p.Metals[i].Subtotal = MetalSubtotal(p.Metals[i].Weight, p.Metals[i].PricePerGram)
	}
	for i := range p.Gemstones {
		l := &p.Gemstones[i]
		l.Subtotal = GemstoneSubtotal(l.Weight, l.Quantity, l.PricePerCarat)
	}

	p.Pricing = Compute(p.PriceInput())
}

// MetalSubtotal is the stored subtotal of a metal line, rounded to 2 decimal places.
func MetalSubtotal(weight, pricePerGram float64) float64 {
	return metalValue(weight, pricePerGram).Round(places).InexactFloat64()
}

func GemstoneSubtotal(weight float64, quantity int, pricePerCarat float64) float64 {
	return gemstoneValue(weight, quantity, pricePerCarat).Round(places).InexactFloat64()
}

// ResolveCharge returns the amount a charge contributes against base, rounded to 2 decimal places.
func ResolveCharge(c *model.Charge, base float64) float64 {
	return resolve(c, dec(base)).Round(places).InexactFloat64()
}

func metalValue(weight, price float64) decimal.Decimal {
	return dec(weight).Mul(dec(price))
}

func gemstoneValue(weight float64, quantity int, price float64) decimal.Decimal {
	return dec(weight).Mul(decimal.NewFromInt(int64(quantity))).Mul(dec(price))
}

func resolve(c *model.Charge, base decimal.Decimal) decimal.Decimal {
	if c.IsZero() {
		return decimal.Zero
	}

	switch c.Type {
	case model.ChargeTypePercentage:
		return base.Mul(dec(c.Value)).Div(hundred)
	case model.ChargeTypeFixed:
		return dec(c.Value)
	default:
		return decimal.Zero
	}
}

// dec maps NaN and ±Inf to zero so that the calculator stays total.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
