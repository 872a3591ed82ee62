package http

import (
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

func chargeToModel(c *chargeDTO) *model.Charge {
	if c == nil {
		return nil
	}
	return &model.Charge{Type: model.ChargeType(strings.ToLower(strings.TrimSpace(c.Type))), Value: c.Value}
}

func chargeToDTO(c *model.Charge) *chargeDTO {
	if c == nil {
		return nil
	}
	return &chargeDTO{Type: string(c.Type), Value: c.Value}
}

func otherChargesToModel(in []otherChargeDTO) []model.OtherCharge {
	return lo.Map(in, func(c otherChargeDTO, _ int) model.OtherCharge {
		return model.OtherCharge{Name: c.Name, Amount: c.Amount}
	})
}

func otherChargesToDTO(in []model.OtherCharge) []otherChargeDTO {
	out := make([]otherChargeDTO, 0, len(in))
	for _, c := range in {
		out = append(out, otherChargeDTO{Name: c.Name, Amount: c.Amount})
	}
	return out
}

func calculateRequestToInput(req calculateRequest) model.PriceInput {
	in := model.PriceInput{
		MakingCharge:  chargeToModel(req.MakingCharge),
		WastageCharge: chargeToModel(req.WastageCharge),
		GSTPercentage: req.GSTPercentage,
		OtherCharges:  otherChargesToModel(req.OtherCharges),
	}
	for _, l := range req.Metals {
		in.Metals = append(in.Metals, model.MetalPriceLine{
			WeightGrams:  l.WeightGrams,
			PricePerGram: l.PricePerGram,
			Wastage:      chargeToModel(l.Wastage),
		})
	}
	for _, l := range req.Gemstones {
		in.Gemstones = append(in.Gemstones, model.GemstonePriceLine{
			WeightCarats:  l.WeightCarats,
			Quantity:      l.Quantity,
			PricePerCarat: l.PricePerCarat,
			Wastage:       chargeToModel(l.Wastage),
		})
	}
	return in
}

func pricingToDTO(p model.Pricing) pricingDTO {
	return pricingDTO{
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

func productRequestToParams(req productRequest) model.ProductParams {
	params := model.ProductParams{
		Name:          req.Name,
		SKU:           req.SKU,
		Category:      req.Category,
		WastageCharge: chargeToModel(req.WastageCharge),
		GSTPercentage: req.GSTPercentage,
		OtherCharges:  otherChargesToModel(req.OtherCharges),
	}
	if c := chargeToModel(req.MakingCharge); c != nil {
		params.MakingCharge = *c
	}
	for _, l := range req.Metals {
		params.Metals = append(params.Metals, model.MetalLineParams{
			MaterialID: l.MaterialID,
			VariantID:  l.VariantID,
			Weight:     l.Weight,
			Wastage:    chargeToModel(l.Wastage),
		})
	}
	for _, l := range req.Gemstones {
		params.Gemstones = append(params.Gemstones, model.GemstoneLineParams{
			MaterialID: l.MaterialID,
			VariantID:  l.VariantID,
			Weight:     l.Weight,
			Quantity:   l.Quantity,
			Wastage:    chargeToModel(l.Wastage),
		})
	}
	return params
}

func productToResponse(p *model.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Category: p.Category,
		Metals: lo.Map(p.Metals, func(l model.MetalLine, _ int) metalLineDTO {
			return metalLineDTO{
				Material:     materialRefDTO{ID: l.Material.ID, Name: l.Material.Name},
				VariantID:    l.VariantID,
				VariantName:  l.VariantName,
				Weight:       l.Weight,
				PricePerGram: l.PricePerGram,
				Subtotal:     l.Subtotal,
				Wastage:      chargeToDTO(l.Wastage),
			}
		}),
		Gemstones: lo.Map(p.Gemstones, func(l model.GemstoneLine, _ int) gemstoneLineDTO {
			return gemstoneLineDTO{
				Material:      materialRefDTO{ID: l.Material.ID, Name: l.Material.Name},
				VariantID:     l.VariantID,
				VariantName:   l.VariantName,
				Weight:        l.Weight,
				Quantity:      l.Quantity,
				PricePerCarat: l.PricePerCarat,
				Subtotal:      l.Subtotal,
				Wastage:       chargeToDTO(l.Wastage),
			}
		}),
		MakingCharge:  *chargeToDTO(&p.MakingCharge),
		WastageCharge: chargeToDTO(p.WastageCharge),
		GSTPercentage: p.GSTPercentage,
		OtherCharges:  otherChargesToDTO(p.OtherCharges),
		Pricing:       pricingToDTO(p.Pricing),
		LastPriceSync: p.LastPriceSync,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func materialToResponse(m *model.Material) materialResponse {
	return materialResponse{
		ID:          m.ID,
		Type:        m.Type.String(),
		Name:        m.Name,
		Description: m.Description,
		Variants: lo.Map(m.Variants, func(v model.Variant, _ int) variantDTO {
			return variantDTO{
				ID:          v.ID,
				Name:        v.Name,
				Purity:      v.Purity,
				Cut:         v.Cut,
				Clarity:     v.Clarity,
				Color:       v.Color,
				UnitPrice:   v.UnitPrice,
				Unit:        v.Unit,
				LastUpdated: v.LastUpdated,
			}
		}),
	}
}

func syncResultToResponse(r *model.SyncResult) syncResponse {
	failed := make([]failedProductDTO, 0)
	for _, o := range r.Failed() {
		failed = append(failed, failedProductDTO{ProductID: o.ProductID, ProductName: o.ProductName, Error: o.Err.Error()})
	}

	return syncResponse{
		EntityType:     r.EntityType.String(),
		EntityID:       r.EntityID,
		EntityName:     r.EntityName,
		VariantID:      r.VariantID,
		VariantName:    r.VariantName,
		OldPrice:       r.OldPrice,
		NewPrice:       r.NewPrice,
		Unit:           r.Unit,
		SyncedProducts: r.SyncedProducts,
		FailedProducts: failed,
		HistoryID:      r.HistoryID,
		SyncedAt:       r.SyncedAt,
	}
}

func previewToResponse(p *model.SyncPreview) previewResponse {
	return previewResponse{
		EntityType:  p.EntityType.String(),
		EntityID:    p.EntityID,
		EntityName:  p.EntityName,
		VariantID:   p.VariantID,
		VariantName: p.VariantName,
		OldPrice:    p.OldPrice,
		NewPrice:    p.NewPrice,
		Unit:        p.Unit,
		Products: lo.Map(p.Products, func(i model.PreviewItem, _ int) previewItemDTO {
			return previewItemDTO(i)
		}),
		TotalDelta: p.TotalDelta,
	}
}

func historyToResponse(entries []model.PriceHistoryEntry) []historyEntryDTO {
	out := make([]historyEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryDTO{
			ID:               e.ID,
			EntityType:       e.EntityType.String(),
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
		})
	}
	return out
}
