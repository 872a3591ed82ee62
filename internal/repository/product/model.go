package repository

import "time"

type ProductEntity struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	SKU      string `bson:"sku,omitempty"`
	Category string `bson:"category,omitempty"`

	Metals    []MetalLineEntity    `bson:"metals"`
	Gemstones []GemstoneLineEntity `bson:"gemstones"`

	MakingCharge  ChargeEntity        `bson:"making_charge"`
	WastageCharge *ChargeEntity       `bson:"wastage_charge,omitempty"`
	GSTPercentage float64             `bson:"gst_percentage"`
	OtherCharges  []OtherChargeEntity `bson:"other_charges,omitempty"`

	PricingEntity `bson:",inline"`

	LastPriceSync *time.Time `bson:"last_price_sync,omitempty"`
	CreatedAt     *time.Time `bson:"created_at,omitempty"`
	UpdatedAt     *time.Time `bson:"updated_at,omitempty"`
}

// MetalLineEntity.Metal and GemstoneLineEntity.Gemstone hold a bare identifier
// or a populated {_id, name} document, see ResolveMaterialRef.
type MetalLineEntity struct {
	Metal        any           `bson:"metal"`
	VariantID    any           `bson:"variant_id"`
	VariantName  string        `bson:"variant_name"`
	Weight       float64       `bson:"weight"`
	PricePerGram float64       `bson:"price_per_gram"`
	Subtotal     float64       `bson:"subtotal"`
	Wastage      *ChargeEntity `bson:"wastage_charge,omitempty"`
}

type GemstoneLineEntity struct {
	Gemstone      any           `bson:"gemstone"`
	VariantID     any           `bson:"variant_id"`
	VariantName   string        `bson:"variant_name"`
	Weight        float64       `bson:"weight"`
	Quantity      int           `bson:"quantity"`
	PricePerCarat float64       `bson:"price_per_carat"`
	Subtotal      float64       `bson:"subtotal"`
	Wastage       *ChargeEntity `bson:"wastage_charge,omitempty"`
}

type ChargeEntity struct {
	Type  string  `bson:"type"`
	Value float64 `bson:"value"`
}

type OtherChargeEntity struct {
	Name   string  `bson:"name"`
	Amount float64 `bson:"amount"`
}

type PricingEntity struct {
	MetalTotal          float64 `bson:"metal_total"`
	GemstoneTotal       float64 `bson:"gemstone_total"`
	MakingChargeAmount  float64 `bson:"making_charge_amount"`
	WastageChargeAmount float64 `bson:"wastage_charge_amount"`
	OtherChargesTotal   float64 `bson:"other_charges_total"`
	Subtotal            float64 `bson:"subtotal"`
	GSTAmount           float64 `bson:"gst_amount"`
	TotalPrice          float64 `bson:"total_price"`
	PerLineWastage      bool    `bson:"per_line_wastage"`
}
