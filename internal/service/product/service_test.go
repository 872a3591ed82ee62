package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/internal/service/mocks"
)

type deps struct {
	catalog *mocks.MockCatalogReader
	store   *mocks.MockProductStore
}

var fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newSvc(d deps) *service {
	svc := NewProductService(d.catalog, d.store, time.Second, time.Second)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func gold() *model.Material {
	return &model.Material{
		ID:   "665f1c2e9b1d4a0012345678",
		Type: model.EntityTypeMetal,
		Name: "Gold",
		Variants: []model.Variant{
			{ID: "665f1c2e9b1d4a0000000022", Name: "22K Gold", UnitPrice: 6200, Unit: model.UnitGram},
			{ID: "665f1c2e9b1d4a0000000018", Name: "18K Gold", UnitPrice: 5100, Unit: model.UnitGram},
		},
	}
}

func diamond() *model.Material {
	return &model.Material{
		ID:   "665f1c2e9b1d4a00000000dd",
		Type: model.EntityTypeGemstone,
		Name: "Diamond",
		Variants: []model.Variant{
			{ID: "665f1c2e9b1d4a00000000a1", Name: "VVS1 Diamond", UnitPrice: 45000, Unit: model.UnitCarat},
		},
	}
}

func necklaceParams() model.ProductParams {
	return model.ProductParams{
		Name: gofakeit.ProductName(),
		SKU:  gofakeit.LetterN(3) + "-" + gofakeit.DigitN(5),
		Metals: []model.MetalLineParams{
			{MaterialID: gold().ID, VariantID: gold().Variants[0].ID, Weight: 8.5},
			{MaterialID: gold().ID, VariantID: gold().Variants[1].ID, Weight: 2},
		},
		Gemstones: []model.GemstoneLineParams{
			{MaterialID: diamond().ID, VariantID: diamond().Variants[0].ID, Weight: 0.5, Quantity: 1},
		},
		MakingCharge:  model.Charge{Type: model.ChargeTypePercentage, Value: 12},
		WastageCharge: model.PercentageCharge(3),
		GSTPercentage: 3,
		OtherCharges:  []model.OtherCharge{{Name: "hallmark", Amount: 500}},
	}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		params func() model.ProductParams
		setup  func(d deps)
		assert func(t *testing.T, res *model.Product, err error, d deps)
	}

	tests := []testCase{
		{
			name: "validation error: gemstone quantity below one and unknown charge type",
			params: func() model.ProductParams {
				p := necklaceParams()
				p.Gemstones[0].Quantity = 0
				p.MakingCharge = model.Charge{Type: "per-gram", Value: 300}
				return p
			},
			setup: func(d deps) {},
			assert: func(t *testing.T, res *model.Product, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.ErrorContains(t, err, "quantity must be at least 1")
				assert.ErrorContains(t, err, `unknown charge type "per-gram"`)
				assert.Nil(t, res)
			},
		},
		{
			name: "validation error: gst out of range",
			params: func() model.ProductParams {
				p := necklaceParams()
				p.GSTPercentage = 101
				return p
			},
			setup: func(d deps) {},
			assert: func(t *testing.T, res *model.Product, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
			},
		},
		{
			name:   "material not found",
			params: necklaceParams,
			setup: func(d deps) {
				d.catalog.
					On("Material", mock.Anything, model.EntityTypeMetal, gold().ID).
					Return((*model.Material)(nil), model.ErrMaterialNotFound).
					Once()
			},
			assert: func(t *testing.T, res *model.Product, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrMaterialNotFound)
				assert.Nil(t, res)
				d.store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name: "variant not found",
			params: func() model.ProductParams {
				p := necklaceParams()
				p.Gemstones[0].VariantID = "665f1c2e9b1d4a00000000ff"
				return p
			},
			setup: func(d deps) {
				d.catalog.On("Material", mock.Anything, model.EntityTypeMetal, gold().ID).Return(gold(), nil).Once()
				d.catalog.On("Material", mock.Anything, model.EntityTypeGemstone, diamond().ID).Return(diamond(), nil).Once()
			},
			assert: func(t *testing.T, res *model.Product, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrVariantNotFound)
				assert.Nil(t, res)
			},
		},
		{
			name:   "duplicate sku",
			params: necklaceParams,
			setup: func(d deps) {
				d.catalog.On("Material", mock.Anything, model.EntityTypeMetal, gold().ID).Return(gold(), nil).Once()
				d.catalog.On("Material", mock.Anything, model.EntityTypeGemstone, diamond().ID).Return(diamond(), nil).Once()
				d.store.On("Create", mock.Anything, mock.Anything).Return(model.ErrProductConflict).Once()
			},
			assert: func(t *testing.T, res *model.Product, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrProductConflict)
				assert.Nil(t, res)
			},
		},
		{
			name:   "success: lines denormalized from catalog and priced",
			params: necklaceParams,
			setup: func(d deps) {
				// gold is looked up once for both metal lines
				d.catalog.On("Material", mock.Anything, model.EntityTypeMetal, gold().ID).Return(gold(), nil).Once()
				d.catalog.On("Material", mock.Anything, model.EntityTypeGemstone, diamond().ID).Return(diamond(), nil).Once()
				d.store.
					On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
						return p.ID != "" && p.Pricing.TotalPrice == 98195.05
					})).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, res *model.Product, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)

				require.Len(t, res.Metals, 2)
				assert.Equal(t, model.MaterialRef{ID: gold().ID, Name: "Gold"}, res.Metals[0].Material)
				assert.Equal(t, "22K Gold", res.Metals[0].VariantName)
				assert.Equal(t, 6200.0, res.Metals[0].PricePerGram)
				assert.Equal(t, 52700.0, res.Metals[0].Subtotal)
				assert.Equal(t, 10200.0, res.Metals[1].Subtotal)
				assert.Equal(t, 22500.0, res.Gemstones[0].Subtotal)

				assert.Equal(t, model.Pricing{
					MetalTotal:          62900,
					GemstoneTotal:       22500,
					MakingChargeAmount:  7548,
					WastageChargeAmount: 1887,
					OtherChargesTotal:   500,
					Subtotal:            95335,
					GSTAmount:           2860.05,
					TotalPrice:          98195.05,
				}, res.Pricing)

				require.NotNil(t, res.CreatedAt)
				assert.True(t, res.CreatedAt.Equal(fixedNow))
				assert.Nil(t, res.LastPriceSync)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				catalog: mocks.NewMockCatalogReader(t),
				store:   mocks.NewMockProductStore(t),
			}
			tt.setup(d)

			res, err := newSvc(d).Create(context.Background(), tt.params())
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	created := fixedNow.Add(-48 * time.Hour)
	synced := fixedNow.Add(-time.Hour)
	existing := &model.Product{ID: gofakeit.UUID(), Name: "old", CreatedAt: &created, LastPriceSync: &synced}

	t.Run("success keeps identity and timestamps", func(t *testing.T) {
		t.Parallel()

		d := deps{catalog: mocks.NewMockCatalogReader(t), store: mocks.NewMockProductStore(t)}
		d.store.On("ProductByID", mock.Anything, existing.ID).Return(existing, nil).Once()
		d.catalog.On("Material", mock.Anything, model.EntityTypeMetal, gold().ID).Return(gold(), nil).Once()
		d.store.
			On("Replace", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
				return p.ID == existing.ID && p.CreatedAt.Equal(created) && p.LastPriceSync.Equal(synced)
			})).
			Return(nil).
			Once()

		params := necklaceParams()
		params.Gemstones = nil

		res, err := newSvc(d).Update(context.Background(), " "+existing.ID+" ", params)
		require.NoError(t, err)
		assert.Equal(t, 62900.0, res.Pricing.MetalTotal)
		assert.Zero(t, res.Pricing.GemstoneTotal)
		assert.True(t, res.UpdatedAt.Equal(fixedNow))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		d := deps{catalog: mocks.NewMockCatalogReader(t), store: mocks.NewMockProductStore(t)}
		d.store.On("ProductByID", mock.Anything, "missing").Return((*model.Product)(nil), model.ErrProductNotFound).Once()

		_, err := newSvc(d).Update(context.Background(), "missing", necklaceParams())
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestServiceProduct(t *testing.T) {
	t.Parallel()

	d := deps{catalog: mocks.NewMockCatalogReader(t), store: mocks.NewMockProductStore(t)}

	_, err := newSvc(d).Product(context.Background(), "  ")
	require.ErrorIs(t, err, model.ErrValidation)

	d.store.On("ProductByID", mock.Anything, "p-1").Return((*model.Product)(nil), errors.New("db read failed")).Once()
	_, err = newSvc(d).Product(context.Background(), "p-1")
	assert.ErrorContains(t, err, "db read failed")
}

func TestServiceCalculate(t *testing.T) {
	t.Parallel()

	svc := newSvc(deps{catalog: mocks.NewMockCatalogReader(t), store: mocks.NewMockProductStore(t)})

	res, err := svc.Calculate(context.Background(), model.PriceInput{
		Metals:        []model.MetalPriceLine{{WeightGrams: 10, PricePerGram: 6200}},
		MakingCharge:  model.FixedCharge(5000),
		WastageCharge: model.FixedCharge(2000),
		GSTPercentage: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 71070.0, res.TotalPrice)

	_, err = svc.Calculate(context.Background(), model.PriceInput{
		Metals: []model.MetalPriceLine{{WeightGrams: -1, PricePerGram: 6200}},
	})
	assert.ErrorIs(t, err, model.ErrValidation)
}
