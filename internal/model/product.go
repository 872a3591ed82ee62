package model

import (
	"slices"
	"time"
)

// MaterialRef points at a material document. Name is empty when the reference was stored unpopulated.
type MaterialRef struct {
	ID   string
	Name string
}

type MetalLine struct {
	Material    MaterialRef
	VariantID   string
	VariantName string
	// Weight in grams.
	Weight float64
	// Unit price copied from the variant when the line was composed or last synchronized.
	PricePerGram float64
	// Always Weight × PricePerGram, rounded to 2 decimal places.
	Subtotal float64
	Wastage  *Charge
}

type GemstoneLine struct {
	Material    MaterialRef
	VariantID   string
	VariantName string
	// Weight of a single stone in carats.
	Weight        float64
	Quantity      int
	PricePerCarat float64
	// Always Weight × Quantity × PricePerCarat, rounded to 2 decimal places.
	Subtotal float64
	Wastage  *Charge
}

type Product struct {
	ID       string
	Name     string
	SKU      string
	Category string

	Metals    []MetalLine
	Gemstones []GemstoneLine

	// Resolved against the metal total.
	MakingCharge Charge
	// Legacy product-level wastage.
	WastageCharge *Charge
	GSTPercentage float64
	OtherCharges  []OtherCharge

	Pricing Pricing

	LastPriceSync *time.Time
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

// Clone returns a deep copy that can be repriced without touching p.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}

	out := *p
	out.Metals = slices.Clone(p.Metals)
	out.Gemstones = slices.Clone(p.Gemstones)
	out.OtherCharges = slices.Clone(p.OtherCharges)
	out.WastageCharge = cloneCharge(p.WastageCharge)
	for i := range out.Metals {
		out.Metals[i].Wastage = cloneCharge(p.Metals[i].Wastage)
	}
	for i := range out.Gemstones {
		out.Gemstones[i].Wastage = cloneCharge(p.Gemstones[i].Wastage)
	}

	return &out
}

// SetVariantPrice overwrites the unit price of every line referencing the variant
// and returns how many lines were touched. Subtotals are left to the calculator.
func (p *Product) SetVariantPrice(entityType EntityType, materialID, variantID string, price float64) int {
	n := 0
	switch entityType {
	case EntityTypeMetal:
		for i := range p.Metals {
			if p.Metals[i].Material.ID == materialID && p.Metals[i].VariantID == variantID {
				p.Metals[i].PricePerGram = price
				n++
			}
		}
	case EntityTypeGemstone:
		for i := range p.Gemstones {
			if p.Gemstones[i].Material.ID == materialID && p.Gemstones[i].VariantID == variantID {
				p.Gemstones[i].PricePerCarat = price
				n++
			}
		}
	}
	return n
}

func (p *Product) PriceInput() PriceInput {
	in := PriceInput{
		Metals:        make([]MetalPriceLine, 0, len(p.Metals)),
		Gemstones:     make([]GemstonePriceLine, 0, len(p.Gemstones)),
		MakingCharge:  &p.MakingCharge,
		WastageCharge: p.WastageCharge,
		GSTPercentage: p.GSTPercentage,
		OtherCharges:  p.OtherCharges,
	}
	for _, l := range p.Metals {
		in.Metals = append(in.Metals, MetalPriceLine{
			WeightGrams:  l.Weight,
			PricePerGram: l.PricePerGram,
			Wastage:      l.Wastage,
		})
	}
	for _, l := range p.Gemstones {
		in.Gemstones = append(in.Gemstones, GemstonePriceLine{
			WeightCarats:  l.Weight,
			Quantity:      l.Quantity,
			PricePerCarat: l.PricePerCarat,
			Wastage:       l.Wastage,
		})
	}
	return in
}

func cloneCharge(c *Charge) *Charge {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// ProductParams is the operator-authored part of a product. Unit prices and names
// of the referenced variants are taken from the catalog.
type ProductParams struct {
	Name     string
	SKU      string
	Category string

	Metals    []MetalLineParams
	Gemstones []GemstoneLineParams

	MakingCharge  Charge
	WastageCharge *Charge
	GSTPercentage float64
	OtherCharges  []OtherCharge
}

type MetalLineParams struct {
	MaterialID string
	VariantID  string
	Weight     float64
	Wastage    *Charge
}

type GemstoneLineParams struct {
	MaterialID string
	VariantID  string
	Weight     float64
	Quantity   int
	Wastage    *Charge
}
