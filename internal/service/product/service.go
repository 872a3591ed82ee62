package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/internal/pricing"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type CatalogReader interface {
	Material(ctx context.Context, t model.EntityType, id string) (*model.Material, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	Replace(ctx context.Context, p *model.Product) error
	ProductByID(ctx context.Context, id string) (*model.Product, error)
}

type service struct {
	catalog CatalogReader
	store   ProductStore
	now     func() time.Time

	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewProductService(
	catalog CatalogReader,
	store ProductStore,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		catalog:        catalog,
		store:          store,
		now:            time.Now,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (s *service) Calculate(ctx context.Context, in model.PriceInput) (model.Pricing, error) {
	if err := validateInput(in); err != nil {
		logger.Error(ctx, "product.service.Calculate validation", logger.ErrorF(err))
		return model.Pricing{}, err
	}
	return pricing.Compute(in), nil
}

func (s *service) Product(ctx context.Context, id string) (*model.Product, error) {
	const op = "product.service.Product"
	log := logger.With(logger.String("product_id", id))

	id = strings.TrimSpace(id)
	if id == "" {
		log.Error(ctx, "validation: empty product id")
		return nil, errors.Join(model.ErrValidation, errors.New("product id must be non-empty"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	p, err := s.store.ProductByID(ctx, id)
	if err != nil {
		log.Error(ctx, "repository product by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, params model.ProductParams) (*model.Product, error) {
	const op = "product.service.Create"
	log := logger.With(logger.String("name", params.Name), logger.String("sku", params.SKU))

	p, err := s.compose(ctx, params)
	if err != nil {
		log.Error(ctx, "compose product", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	p.ID = uuid.NewString()
	p.CreatedAt = lo.ToPtr(now)
	p.UpdatedAt = lo.ToPtr(now)

	wctx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	if err := s.store.Create(wctx, p); err != nil {
		log.Error(ctx, "repository create product", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "product created",
		logger.String("product_id", p.ID),
		logger.Float64("total_price", p.Pricing.TotalPrice),
	)

	return p, nil
}

// Update recomposes a product from params against the current catalog prices.
func (s *service) Update(ctx context.Context, id string, params model.ProductParams) (*model.Product, error) {
	const op = "product.service.Update"
	log := logger.With(logger.String("product_id", id))

	existing, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.compose(ctx, params)
	if err != nil {
		log.Error(ctx, "compose product", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.LastPriceSync = existing.LastPriceSync
	p.UpdatedAt = lo.ToPtr(s.now())

	wctx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	if err := s.store.Replace(wctx, p); err != nil {
		log.Error(ctx, "repository replace product", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// compose denormalizes variant names and unit prices from the catalog and prices the result.
func (s *service) compose(ctx context.Context, params model.ProductParams) (*model.Product, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	cache := make(map[string]*model.Material)
	lookup := func(t model.EntityType, materialID, variantID string) (*model.Material, *model.Variant, error) {
		key := t.String() + "/" + materialID
		m, ok := cache[key]
		if !ok {
			var err error
			m, err = s.catalog.Material(ctx, t, materialID)
			if err != nil {
				return nil, nil, fmt.Errorf("%s %s: %w", t, materialID, err)
			}
			cache[key] = m
		}

		v, ok := m.Variant(variantID)
		if !ok {
			return nil, nil, fmt.Errorf("%s %s variant %s: %w", t, materialID, variantID, model.ErrVariantNotFound)
		}
		return m, v, nil
	}

	p := &model.Product{
		Name:          strings.TrimSpace(params.Name),
		SKU:           strings.TrimSpace(params.SKU),
		Category:      params.Category,
		Metals:        make([]model.MetalLine, 0, len(params.Metals)),
		Gemstones:     make([]model.GemstoneLine, 0, len(params.Gemstones)),
		MakingCharge:  params.MakingCharge,
		WastageCharge: params.WastageCharge,
		GSTPercentage: params.GSTPercentage,
		OtherCharges:  params.OtherCharges,
	}

	for _, l := range params.Metals {
		m, v, err := lookup(model.EntityTypeMetal, l.MaterialID, l.VariantID)
		if err != nil {
			return nil, err
		}
		p.Metals = append(p.Metals, model.MetalLine{
			Material:     model.MaterialRef{ID: m.ID, Name: m.Name},
			VariantID:    v.ID,
			VariantName:  v.Name,
			Weight:       l.Weight,
			PricePerGram: v.UnitPrice,
			Wastage:      l.Wastage,
		})
	}

	for _, l := range params.Gemstones {
		m, v, err := lookup(model.EntityTypeGemstone, l.MaterialID, l.VariantID)
		if err != nil {
			return nil, err
		}
		p.Gemstones = append(p.Gemstones, model.GemstoneLine{
			Material:      model.MaterialRef{ID: m.ID, Name: m.Name},
			VariantID:     v.ID,
			VariantName:   v.Name,
			Weight:        l.Weight,
			Quantity:      l.Quantity,
			PricePerCarat: v.UnitPrice,
			Wastage:       l.Wastage,
		})
	}

	pricing.Reprice(p)

	return p, nil
}
