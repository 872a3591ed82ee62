package repository

import (
	"fmt"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

func EntityToModel(e *ProductEntity) (*model.Product, error) {
	if e == nil {
		return nil, nil
	}

	out := &model.Product{
		ID:            e.ID,
		Name:          e.Name,
		SKU:           e.SKU,
		Category:      e.Category,
		Metals:        make([]model.MetalLine, 0, len(e.Metals)),
		Gemstones:     make([]model.GemstoneLine, 0, len(e.Gemstones)),
		MakingCharge:  chargeToModel(e.MakingCharge),
		WastageCharge: chargePtrToModel(e.WastageCharge),
		GSTPercentage: e.GSTPercentage,
		OtherCharges: lo.Map(e.OtherCharges, func(c OtherChargeEntity, _ int) model.OtherCharge {
			return model.OtherCharge{Name: c.Name, Amount: c.Amount}
		}),
		Pricing:       pricingToModel(e.PricingEntity),
		LastPriceSync: e.LastPriceSync,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	for i, l := range e.Metals {
		ref, err := ResolveMaterialRef(l.Metal)
		if err != nil {
			return nil, fmt.Errorf("product %s metal line %d: %w", e.ID, i, err)
		}
		vid, err := resolveIdentifier(l.VariantID)
		if err != nil {
			return nil, fmt.Errorf("product %s metal line %d variant: %w", e.ID, i, err)
		}
		out.Metals = append(out.Metals, model.MetalLine{
			Material:     ref,
			VariantID:    vid,
			VariantName:  l.VariantName,
			Weight:       l.Weight,
			PricePerGram: l.PricePerGram,
			Subtotal:     l.Subtotal,
			Wastage:      chargePtrToModel(l.Wastage),
		})
	}

	for i, l := range e.Gemstones {
		ref, err := ResolveMaterialRef(l.Gemstone)
		if err != nil {
			return nil, fmt.Errorf("product %s gemstone line %d: %w", e.ID, i, err)
		}
		vid, err := resolveIdentifier(l.VariantID)
		if err != nil {
			return nil, fmt.Errorf("product %s gemstone line %d variant: %w", e.ID, i, err)
		}
		out.Gemstones = append(out.Gemstones, model.GemstoneLine{
			Material:      ref,
			VariantID:     vid,
			VariantName:   l.VariantName,
			Weight:        l.Weight,
			Quantity:      l.Quantity,
			PricePerCarat: l.PricePerCarat,
			Subtotal:      l.Subtotal,
			Wastage:       chargePtrToModel(l.Wastage),
		})
	}

	return out, nil
}

func EntityFromModel(p *model.Product) *ProductEntity {
	if p == nil {
		return nil
	}

	return &ProductEntity{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Category:      p.Category,
		Metals:        metalsFromModel(p.Metals),
		Gemstones:     gemstonesFromModel(p.Gemstones),
		MakingCharge:  chargeFromModel(p.MakingCharge),
		WastageCharge: chargePtrFromModel(p.WastageCharge),
		GSTPercentage: p.GSTPercentage,
		OtherCharges: lo.Map(p.OtherCharges, func(c model.OtherCharge, _ int) OtherChargeEntity {
			return OtherChargeEntity{Name: c.Name, Amount: c.Amount}
		}),
		PricingEntity: pricingFromModel(p.Pricing),
		LastPriceSync: p.LastPriceSync,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func metalsFromModel(lines []model.MetalLine) []MetalLineEntity {
	return lo.Map(lines, func(l model.MetalLine, _ int) MetalLineEntity {
		return MetalLineEntity{
			Metal:        EncodeMaterialRef(l.Material),
			VariantID:    l.VariantID,
			VariantName:  l.VariantName,
			Weight:       l.Weight,
			PricePerGram: l.PricePerGram,
			Subtotal:     l.Subtotal,
			Wastage:      chargePtrFromModel(l.Wastage),
		}
	})
}

func gemstonesFromModel(lines []model.GemstoneLine) []GemstoneLineEntity {
	return lo.Map(lines, func(l model.GemstoneLine, _ int) GemstoneLineEntity {
		return GemstoneLineEntity{
			Gemstone:      EncodeMaterialRef(l.Material),
			VariantID:     l.VariantID,
			VariantName:   l.VariantName,
			Weight:        l.Weight,
			Quantity:      l.Quantity,
			PricePerCarat: l.PricePerCarat,
			Subtotal:      l.Subtotal,
			Wastage:       chargePtrFromModel(l.Wastage),
		}
	})
}

func chargeToModel(c ChargeEntity) model.Charge {
	return model.Charge{Type: model.ChargeType(c.Type), Value: c.Value}
}

func chargePtrToModel(c *ChargeEntity) *model.Charge {
	if c == nil {
		return nil
	}
	return lo.ToPtr(chargeToModel(*c))
}

func chargeFromModel(c model.Charge) ChargeEntity {
	return ChargeEntity{Type: string(c.Type), Value: c.Value}
}

func chargePtrFromModel(c *model.Charge) *ChargeEntity {
	if c == nil {
		return nil
	}
	return lo.ToPtr(chargeFromModel(*c))
}

func pricingToModel(e PricingEntity) model.Pricing {
	return model.Pricing{
		MetalTotal:          e.MetalTotal,
		GemstoneTotal:       e.GemstoneTotal,
		MakingChargeAmount:  e.MakingChargeAmount,
		WastageChargeAmount: e.WastageChargeAmount,
		OtherChargesTotal:   e.OtherChargesTotal,
		Subtotal:            e.Subtotal,
		GSTAmount:           e.GSTAmount,
		TotalPrice:          e.TotalPrice,
		PerLineWastage:      e.PerLineWastage,
	}
}

func pricingFromModel(p model.Pricing) PricingEntity {
	return PricingEntity{
		MetalTotal:          p.MetalTotal,
		GemstoneTotal:       p.GemstoneTotal,
		MakingChargeAmount:  p.MakingChargeAmount,
		WastageChargeAmount: p.WastageChargeAmount,
		OtherChargesTotal:   p.OtherChargesTotal,
		Subtotal:            p.Subtotal,
		GSTAmount:           p.GSTAmount,
		TotalPrice:          p.TotalPrice,
		PerLineWastage:      p.PerLineWastage,
	}
}

// variantFilter matches products with at least one line of the given kind referencing the variant.
func variantFilter(t model.EntityType, materialID, variantID string) bson.M {
	linesField, refField := "metals", "metal"
	if t == model.EntityTypeGemstone {
		linesField, refField = "gemstones", "gemstone"
	}

	ids := identifierForms(materialID)

	return bson.M{
		linesField: bson.M{"$elemMatch": bson.M{
			"$or": bson.A{
				bson.M{refField: bson.M{"$in": ids}},
				bson.M{refField + "._id": bson.M{"$in": ids}},
			},
			"variant_id": bson.M{"$in": identifierForms(variantID)},
		}},
	}
}
