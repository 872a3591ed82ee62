package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MaterialEntity struct {
	ID          bson.ObjectID   `bson:"_id"`
	Name        string          `bson:"name"`
	Description string          `bson:"description,omitempty"`
	Variants    []VariantEntity `bson:"variants"`
	CreatedAt   *time.Time      `bson:"created_at,omitempty"`
	UpdatedAt   *time.Time      `bson:"updated_at,omitempty"`
}

type VariantEntity struct {
	ID          bson.ObjectID `bson:"_id"`
	Name        string        `bson:"name"`
	Purity      string        `bson:"purity,omitempty"`
	Cut         string        `bson:"cut,omitempty"`
	Clarity     string        `bson:"clarity,omitempty"`
	Color       string        `bson:"color,omitempty"`
	UnitPrice   float64       `bson:"unit_price"`
	Unit        string        `bson:"unit"`
	LastUpdated *time.Time    `bson:"last_updated,omitempty"`
}
