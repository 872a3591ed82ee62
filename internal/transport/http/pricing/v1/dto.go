package http

import "time"

type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

type chargeDTO struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type otherChargeDTO struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type calculateRequest struct {
	Metals []struct {
		WeightGrams  float64    `json:"weight_grams"`
		PricePerGram float64    `json:"price_per_gram"`
		Wastage      *chargeDTO `json:"wastage,omitempty"`
	} `json:"metals"`
	Gemstones []struct {
		WeightCarats  float64    `json:"weight_carats"`
		Quantity      int        `json:"quantity"`
		PricePerCarat float64    `json:"price_per_carat"`
		Wastage       *chargeDTO `json:"wastage,omitempty"`
	} `json:"gemstones"`
	MakingCharge  *chargeDTO       `json:"making_charge,omitempty"`
	WastageCharge *chargeDTO       `json:"wastage_charge,omitempty"`
	GSTPercentage float64          `json:"gst_percentage"`
	OtherCharges  []otherChargeDTO `json:"other_charges"`
}

type pricingDTO struct {
	MetalTotal          float64 `json:"metal_total"`
	GemstoneTotal       float64 `json:"gemstone_total"`
	MakingChargeAmount  float64 `json:"making_charge_amount"`
	WastageChargeAmount float64 `json:"wastage_charge_amount"`
	OtherChargesTotal   float64 `json:"other_charges_total"`
	Subtotal            float64 `json:"subtotal"`
	GSTAmount           float64 `json:"gst_amount"`
	TotalPrice          float64 `json:"total_price"`
	PerLineWastage      bool    `json:"per_line_wastage"`
}

type productRequest struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
	Metals   []struct {
		MaterialID string     `json:"material_id"`
		VariantID  string     `json:"variant_id"`
		Weight     float64    `json:"weight"`
		Wastage    *chargeDTO `json:"wastage,omitempty"`
	} `json:"metals"`
	Gemstones []struct {
		MaterialID string     `json:"material_id"`
		VariantID  string     `json:"variant_id"`
		Weight     float64    `json:"weight"`
		Quantity   int        `json:"quantity"`
		Wastage    *chargeDTO `json:"wastage,omitempty"`
	} `json:"gemstones"`
	MakingCharge  *chargeDTO       `json:"making_charge,omitempty"`
	WastageCharge *chargeDTO       `json:"wastage_charge,omitempty"`
	GSTPercentage float64          `json:"gst_percentage"`
	OtherCharges  []otherChargeDTO `json:"other_charges"`
}

type materialRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type metalLineDTO struct {
	Material     materialRefDTO `json:"material"`
	VariantID    string         `json:"variant_id"`
	VariantName  string         `json:"variant_name"`
	Weight       float64        `json:"weight"`
	PricePerGram float64        `json:"price_per_gram"`
	Subtotal     float64        `json:"subtotal"`
	Wastage      *chargeDTO     `json:"wastage,omitempty"`
}

type gemstoneLineDTO struct {
	Material      materialRefDTO `json:"material"`
	VariantID     string         `json:"variant_id"`
	VariantName   string         `json:"variant_name"`
	Weight        float64        `json:"weight"`
	Quantity      int            `json:"quantity"`
	PricePerCarat float64        `json:"price_per_carat"`
	Subtotal      float64        `json:"subtotal"`
	Wastage       *chargeDTO     `json:"wastage,omitempty"`
}

type productResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku,omitempty"`
	Category      string            `json:"category,omitempty"`
	Metals        []metalLineDTO    `json:"metals"`
	Gemstones     []gemstoneLineDTO `json:"gemstones"`
	MakingCharge  chargeDTO         `json:"making_charge"`
	WastageCharge *chargeDTO        `json:"wastage_charge,omitempty"`
	GSTPercentage float64           `json:"gst_percentage"`
	OtherCharges  []otherChargeDTO  `json:"other_charges"`
	Pricing       pricingDTO        `json:"pricing"`
	LastPriceSync *time.Time        `json:"last_price_sync,omitempty"`
	CreatedAt     *time.Time        `json:"created_at,omitempty"`
	UpdatedAt     *time.Time        `json:"updated_at,omitempty"`
}

type variantDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Purity      string     `json:"purity,omitempty"`
	Cut         string     `json:"cut,omitempty"`
	Clarity     string     `json:"clarity,omitempty"`
	Color       string     `json:"color,omitempty"`
	UnitPrice   float64    `json:"unit_price"`
	Unit        string     `json:"unit"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

type materialResponse struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Variants    []variantDTO `json:"variants"`
}

type syncRequest struct {
	EntityType string   `json:"entity_type"`
	EntityID   string   `json:"entity_id"`
	VariantID  string   `json:"variant_id"`
	NewPrice   *float64 `json:"new_price"`
}

type failedProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Error       string `json:"error"`
}

type syncResponse struct {
	EntityType     string             `json:"entity_type"`
	EntityID       string             `json:"entity_id"`
	EntityName     string             `json:"entity_name"`
	VariantID      string             `json:"variant_id"`
	VariantName    string             `json:"variant_name"`
	OldPrice       float64            `json:"old_price"`
	NewPrice       float64            `json:"new_price"`
	Unit           string             `json:"unit"`
	SyncedProducts int                `json:"synced_products"`
	FailedProducts []failedProductDTO `json:"failed_products"`
	HistoryID      string             `json:"history_id"`
	SyncedAt       time.Time          `json:"synced_at"`
}

type previewItemDTO struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	CurrentTotal float64 `json:"current_total"`
	NewTotal     float64 `json:"new_total"`
	Delta        float64 `json:"delta"`
}

type previewResponse struct {
	EntityType  string           `json:"entity_type"`
	EntityID    string           `json:"entity_id"`
	EntityName  string           `json:"entity_name"`
	VariantID   string           `json:"variant_id"`
	VariantName string           `json:"variant_name"`
	OldPrice    float64          `json:"old_price"`
	NewPrice    float64          `json:"new_price"`
	Unit        string           `json:"unit"`
	Products    []previewItemDTO `json:"products"`
	TotalDelta  float64          `json:"total_delta"`
}

type historyEntryDTO struct {
	ID               string    `json:"id"`
	EntityType       string    `json:"entity_type"`
	EntityID         string    `json:"entity_id"`
	EntityName       string    `json:"entity_name"`
	VariantID        string    `json:"variant_id"`
	VariantName      string    `json:"variant_name"`
	OldPrice         float64   `json:"old_price"`
	NewPrice         float64   `json:"new_price"`
	Unit             string    `json:"unit"`
	AffectedProducts int       `json:"affected_products"`
	FailedProducts   int       `json:"failed_products"`
	CreatedAt        time.Time `json:"created_at"`
}
