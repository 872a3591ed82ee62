package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

func EntityToModel(t model.EntityType, e *MaterialEntity) *model.Material {
	if e == nil {
		return nil
	}

	out := &model.Material{
		ID:          e.ID.Hex(),
		Type:        t,
		Name:        e.Name,
		Description: e.Description,
		Variants:    make([]model.Variant, 0, len(e.Variants)),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	for _, v := range e.Variants {
		unit := v.Unit
		if unit == "" {
			unit = t.Unit()
		}
		out.Variants = append(out.Variants, model.Variant{
			ID:          v.ID.Hex(),
			Name:        v.Name,
			Purity:      v.Purity,
			Cut:         v.Cut,
			Clarity:     v.Clarity,
			Color:       v.Color,
			UnitPrice:   v.UnitPrice,
			Unit:        unit,
			LastUpdated: v.LastUpdated,
		})
	}

	return out
}

// EntityFromModel assigns fresh object ids to the material and variants that have none.
func EntityFromModel(m *model.Material) (*MaterialEntity, error) {
	if m == nil {
		return nil, nil
	}

	id, err := objectIDOrNew(m.ID)
	if err != nil {
		return nil, fmt.Errorf("material id: %w", err)
	}

	out := &MaterialEntity{
		ID:          id,
		Name:        m.Name,
		Description: m.Description,
		Variants:    make([]VariantEntity, 0, len(m.Variants)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	for _, v := range m.Variants {
		vid, err := objectIDOrNew(v.ID)
		if err != nil {
			return nil, fmt.Errorf("variant id: %w", err)
		}
		out.Variants = append(out.Variants, VariantEntity{
			ID:          vid,
			Name:        v.Name,
			Purity:      v.Purity,
			Cut:         v.Cut,
			Clarity:     v.Clarity,
			Color:       v.Color,
			UnitPrice:   v.UnitPrice,
			Unit:        v.Unit,
			LastUpdated: v.LastUpdated,
		})
	}

	return out, nil
}

func objectIDOrNew(hex string) (bson.ObjectID, error) {
	if hex == "" {
		return bson.NewObjectID(), nil
	}
	return bson.ObjectIDFromHex(hex)
}
