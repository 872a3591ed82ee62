package model

import "time"

// PriceHistoryEntry is an immutable record of one variant price change.
type PriceHistoryEntry struct {
	ID          string
	EntityType  EntityType
	EntityID    string
	EntityName  string
	VariantID   string
	VariantName string
	OldPrice    float64
	NewPrice    float64
	Unit        string
	// Products actually updated by the synchronization.
	AffectedProducts int
	// Products that matched but could not be updated.
	FailedProducts int
	CreatedAt      time.Time
}

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type HistoryFilter struct {
	EntityType EntityType
	EntityID   string
	VariantID  string
	Limit      int
}
