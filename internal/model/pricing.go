package model

// PriceInput is everything the calculator needs to price one product.
type PriceInput struct {
	Metals    []MetalPriceLine
	Gemstones []GemstonePriceLine

	MakingCharge *Charge
	// Legacy product-level wastage. Ignored as soon as any line carries its own wastage.
	WastageCharge *Charge
	GSTPercentage float64
	OtherCharges  []OtherCharge
}

type MetalPriceLine struct {
	WeightGrams  float64
	PricePerGram float64
	Wastage      *Charge
}

type GemstonePriceLine struct {
	WeightCarats  float64
	Quantity      int
	PricePerCarat float64
	Wastage       *Charge
}

// Pricing holds the derived price fields of a product, each rounded to 2 decimal places.
type Pricing struct {
	MetalTotal          float64
	GemstoneTotal       float64
	MakingChargeAmount  float64
	WastageChargeAmount float64
	OtherChargesTotal   float64
	Subtotal            float64
	GSTAmount           float64
	TotalPrice          float64

	// True when wastage was taken from the composition lines instead of the legacy charge.
	PerLineWastage bool
}
