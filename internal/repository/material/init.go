package repository

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

type Seeder interface {
	Count(ctx context.Context, t model.EntityType) (int64, error)
	CreateBatch(ctx context.Context, t model.EntityType, materials []*model.Material) error
}

// MaterialsBootstrap inserts a starter catalog into every empty material collection.
func MaterialsBootstrap(ctx context.Context, s Seeder) error {
	now := time.Now()

	catalog := map[model.EntityType][]*model.Material{
		model.EntityTypeMetal: {
			{
				Name:        "Gold",
				Description: "Hallmarked gold.",
				Variants: []model.Variant{
					{Name: "22K Gold", Purity: "91.6%", UnitPrice: 6200, Unit: model.UnitGram, LastUpdated: lo.ToPtr(now)},
					{Name: "18K Gold", Purity: "75%", UnitPrice: 5100, Unit: model.UnitGram, LastUpdated: lo.ToPtr(now)},
				},
				UpdatedAt: lo.ToPtr(now),
			},
			{
				Name: "Silver",
				Variants: []model.Variant{
					{Name: "Sterling Silver 925", Purity: "92.5%", UnitPrice: 95, Unit: model.UnitGram, LastUpdated: lo.ToPtr(now)},
				},
				UpdatedAt: lo.ToPtr(now),
			},
		},
		model.EntityTypeGemstone: {
			{
				Name: "Diamond",
				Variants: []model.Variant{
					{Name: "VVS1 Diamond", Cut: "Excellent", Clarity: "VVS1", Color: "E", UnitPrice: 45000, Unit: model.UnitCarat, LastUpdated: lo.ToPtr(now)},
					{Name: "VS1 Diamond", Cut: "Very Good", Clarity: "VS1", Color: "G", UnitPrice: 32000, Unit: model.UnitCarat, LastUpdated: lo.ToPtr(now)},
				},
				UpdatedAt: lo.ToPtr(now),
			},
			{
				Name: "Ruby",
				Variants: []model.Variant{
					{Name: "Burmese Ruby", Cut: "Oval", Color: "Pigeon Blood", UnitPrice: 18000, Unit: model.UnitCarat, LastUpdated: lo.ToPtr(now)},
				},
				UpdatedAt: lo.ToPtr(now),
			},
		},
	}

	for _, t := range []model.EntityType{model.EntityTypeMetal, model.EntityTypeGemstone} {
		n, err := s.Count(ctx, t)
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := s.CreateBatch(ctx, t, catalog[t]); err != nil {
			return err
		}
	}

	return nil
}
