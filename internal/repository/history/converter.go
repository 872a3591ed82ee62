package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

func EntityToModel(e PriceHistoryEntity) model.PriceHistoryEntry {
	return model.PriceHistoryEntry{
		ID:               e.ID,
		EntityType:       model.EntityType(e.EntityType),
		EntityID:         e.EntityID,
		EntityName:       e.EntityName,
		VariantID:        e.VariantID,
		VariantName:      e.VariantName,
		OldPrice:         e.OldPrice,
		NewPrice:         e.NewPrice,
		Unit:             e.Unit,
		AffectedProducts: e.AffectedProducts,
		FailedProducts:   e.FailedProducts,
		CreatedAt:        e.CreatedAt,
	}
}

func EntityFromModel(m model.PriceHistoryEntry) PriceHistoryEntity {
	return PriceHistoryEntity{
		ID:               m.ID,
		EntityType:       string(m.EntityType),
		EntityID:         m.EntityID,
		EntityName:       m.EntityName,
		VariantID:        m.VariantID,
		VariantName:      m.VariantName,
		OldPrice:         m.OldPrice,
		NewPrice:         m.NewPrice,
		Unit:             m.Unit,
		AffectedProducts: m.AffectedProducts,
		FailedProducts:   m.FailedProducts,
		CreatedAt:        m.CreatedAt,
	}
}

func BuildMongoFilter(f model.HistoryFilter) bson.M {
	q := bson.M{}

	if f.EntityType != "" {
		q["entity_type"] = string(f.EntityType)
	}
	if f.EntityID != "" {
		q["entity_id"] = f.EntityID
	}
	if f.VariantID != "" {
		q["variant_id"] = f.VariantID
	}

	return q
}
