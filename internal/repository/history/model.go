package repository

import "time"

type PriceHistoryEntity struct {
	ID               string    `bson:"_id"`
	EntityType       string    `bson:"entity_type"`
	EntityID         string    `bson:"entity_id"`
	EntityName       string    `bson:"entity_name"`
	VariantID        string    `bson:"variant_id"`
	VariantName      string    `bson:"variant_name"`
	OldPrice         float64   `bson:"old_price"`
	NewPrice         float64   `bson:"new_price"`
	Unit             string    `bson:"unit"`
	AffectedProducts int       `bson:"affected_products"`
	FailedProducts   int       `bson:"failed_products"`
	CreatedAt        time.Time `bson:"created_at"`
}
