package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/internal/pricing"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type MaterialRepository interface {
	Material(ctx context.Context, t model.EntityType, id string) (*model.Material, error)
	UpdateVariantPrice(ctx context.Context, t model.EntityType, materialID, variantID string, price float64, at time.Time) error
}

type ProductRepository interface {
	ListByVariant(ctx context.Context, t model.EntityType, materialID, variantID string) ([]*model.Product, error)
	UpdatePricing(ctx context.Context, p *model.Product) error
}

type HistoryRepository interface {
	Append(ctx context.Context, entry model.PriceHistoryEntry) error
	List(ctx context.Context, filter model.HistoryFilter) ([]model.PriceHistoryEntry, error)
}

type EventProducer interface {
	SendPriceSynced(ctx context.Context, event model.PriceSyncedEvent) error
}

type Metrics interface {
	SyncFinished(t model.EntityType, outcome string, synced, failed int, took time.Duration)
}

const (
	OutcomeOK       = "ok"
	OutcomePartial  = "partial"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var errNoMatchingLine = errors.New("no composition line references the variant")

type service struct {
	materials MaterialRepository
	products  ProductRepository
	history   HistoryRepository
	events    EventProducer
	metrics   Metrics

	locks *keyedMutex
	now   func() time.Time

	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

// NewPriceSyncService builds the synchronization service. events may be nil when
// no broker is configured.
func NewPriceSyncService(
	materials MaterialRepository,
	products ProductRepository,
	history HistoryRepository,
	events EventProducer,
	metrics Metrics,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		materials:      materials,
		products:       products,
		history:        history,
		events:         events,
		metrics:        metrics,
		locks:          newKeyedMutex(),
		now:            time.Now,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// Synchronize sets a new unit price on a variant, reprices every product referencing
// it and appends one history entry. Products that fail to persist do not stop the
// loop; they are reported in the result.
func (s *service) Synchronize(ctx context.Context, params model.SyncParams) (*model.SyncResult, error) {
	const op = "pricesync.service.Synchronize"
	log := logger.With(
		logger.String("entity_type", params.EntityType.String()),
		logger.String("entity_id", params.EntityID),
		logger.String("variant_id", params.VariantID),
		logger.Float64("new_price", params.NewPrice),
	)
	start := time.Now()

	params, err := normalize(params)
	if err != nil {
		log.Error(ctx, "validation", logger.ErrorF(err))
		s.observe(params.EntityType, OutcomeInvalid, 0, 0, start)
		return nil, err
	}

	unlock := s.locks.Lock(lockKey(params))
	defer unlock()

	material, variant, err := s.variant(ctx, params)
	if err != nil {
		log.Error(ctx, "load variant", logger.ErrorF(err))
		s.observe(params.EntityType, outcomeOf(err), 0, 0, start)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	params.EntityID, params.VariantID = material.ID, variant.ID

	res := &model.SyncResult{
		EntityType:  params.EntityType,
		EntityID:    material.ID,
		EntityName:  material.Name,
		VariantID:   variant.ID,
		VariantName: variant.Name,
		OldPrice:    variant.UnitPrice,
		NewPrice:    params.NewPrice,
		Unit:        variant.Unit,
		SyncedAt:    s.now(),
	}

	if err := s.withWrite(ctx, func(ctx context.Context) error {
		return s.materials.UpdateVariantPrice(ctx, params.EntityType, params.EntityID, params.VariantID, params.NewPrice, res.SyncedAt)
	}); err != nil {
		log.Error(ctx, "update variant price", logger.ErrorF(err))
		s.observe(params.EntityType, outcomeOf(err), 0, 0, start)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := s.matching(ctx, params)
	if err != nil {
		log.Error(ctx, "list products by variant", logger.ErrorF(err))
		s.observe(params.EntityType, OutcomeError, 0, 0, start)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range products {
		outcome := s.syncProduct(ctx, p, params, res.SyncedAt)
		if outcome.Err != nil {
			log.Error(ctx, "sync product",
				logger.String("product_id", p.ID),
				logger.ErrorF(outcome.Err),
			)
		} else {
			res.SyncedProducts++
		}
		res.Outcomes = append(res.Outcomes, outcome)
	}
	failed := len(res.Outcomes) - res.SyncedProducts

	entry := model.PriceHistoryEntry{
		ID:               uuid.NewString(),
		EntityType:       params.EntityType,
		EntityID:         material.ID,
		EntityName:       material.Name,
		VariantID:        variant.ID,
		VariantName:      variant.Name,
		OldPrice:         res.OldPrice,
		NewPrice:         res.NewPrice,
		Unit:             res.Unit,
		AffectedProducts: res.SyncedProducts,
		FailedProducts:   failed,
		CreatedAt:        res.SyncedAt,
	}
	if err := s.withWrite(ctx, func(ctx context.Context) error {
		return s.history.Append(ctx, entry)
	}); err != nil {
		log.Error(ctx, "append price history", logger.ErrorF(err), logger.Int("synced", res.SyncedProducts))
		s.observe(params.EntityType, OutcomeError, res.SyncedProducts, failed, start)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res.HistoryID = entry.ID

	s.publish(ctx, res)

	outcome := OutcomeOK
	if failed > 0 {
		outcome = OutcomePartial
	}
	s.observe(params.EntityType, outcome, res.SyncedProducts, failed, start)

	log.Info(ctx, "variant price synchronized",
		logger.Float64("old_price", res.OldPrice),
		logger.Int("synced", res.SyncedProducts),
		logger.Int("failed", failed),
		logger.Duration("took", time.Since(start)),
	)

	return res, nil
}

// Preview computes the totals a synchronization would produce without writing anything.
func (s *service) Preview(ctx context.Context, params model.SyncParams) (*model.SyncPreview, error) {
	const op = "pricesync.service.Preview"
	log := logger.With(
		logger.String("entity_type", params.EntityType.String()),
		logger.String("entity_id", params.EntityID),
		logger.String("variant_id", params.VariantID),
	)

	params, err := normalize(params)
	if err != nil {
		log.Error(ctx, "validation", logger.ErrorF(err))
		return nil, err
	}

	material, variant, err := s.variant(ctx, params)
	if err != nil {
		log.Error(ctx, "load variant", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	params.EntityID, params.VariantID = material.ID, variant.ID

	products, err := s.matching(ctx, params)
	if err != nil {
		log.Error(ctx, "list products by variant", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := &model.SyncPreview{
		EntityType:  params.EntityType,
		EntityID:    material.ID,
		EntityName:  material.Name,
		VariantID:   variant.ID,
		VariantName: variant.Name,
		OldPrice:    variant.UnitPrice,
		NewPrice:    params.NewPrice,
		Unit:        variant.Unit,
		Products:    make([]model.PreviewItem, 0, len(products)),
	}

	total := decimal.Zero
	for _, p := range products {
		next := p.Clone()
		if applyVariantPrice(next, params) == 0 {
			log.Warn(ctx, "matched product has no line for variant, excluded from preview",
				logger.String("product_id", p.ID))
			continue
		}

		delta := priceDelta(p.Pricing.TotalPrice, next.Pricing.TotalPrice)
		total = total.Add(delta)

		out.Products = append(out.Products, model.PreviewItem{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CurrentTotal: p.Pricing.TotalPrice,
			NewTotal:     next.Pricing.TotalPrice,
			Delta:        delta.InexactFloat64(),
		})
	}
	out.TotalDelta = total.InexactFloat64()

	return out, nil
}

func (s *service) History(ctx context.Context, filter model.HistoryFilter) ([]model.PriceHistoryEntry, error) {
	const op = "pricesync.service.History"
	log := logger.With(
		logger.String("entity_type", filter.EntityType.String()),
		logger.String("entity_id", filter.EntityID),
	)

	if filter.EntityType != "" && !filter.EntityType.Valid() {
		log.Error(ctx, "validation: unknown entity type")
		return nil, errors.Join(model.ErrValidation, fmt.Errorf("unknown entity type %q", filter.EntityType))
	}
	switch {
	case filter.Limit < 0:
		log.Error(ctx, "validation: negative limit")
		return nil, errors.Join(model.ErrValidation, errors.New("limit must be non-negative"))
	case filter.Limit == 0:
		filter.Limit = model.DefaultHistoryLimit
	case filter.Limit > model.MaxHistoryLimit:
		filter.Limit = model.MaxHistoryLimit
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	out, err := s.history.List(ctx, filter)
	if err != nil {
		log.Error(ctx, "repository list history", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *service) syncProduct(ctx context.Context, p *model.Product, params model.SyncParams, at time.Time) model.ProductOutcome {
	outcome := model.ProductOutcome{
		ProductID:   p.ID,
		ProductName: p.Name,
		OldTotal:    p.Pricing.TotalPrice,
	}

	if applyVariantPrice(p, params) == 0 {
		outcome.Err = errNoMatchingLine
		return outcome
	}
	p.LastPriceSync = lo.ToPtr(at)
	p.UpdatedAt = lo.ToPtr(at)
	outcome.NewTotal = p.Pricing.TotalPrice

	outcome.Err = s.withWrite(ctx, func(ctx context.Context) error {
		return s.products.UpdatePricing(ctx, p)
	})

	return outcome
}

func (s *service) variant(ctx context.Context, params model.SyncParams) (*model.Material, *model.Variant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	m, err := s.materials.Material(ctx, params.EntityType, params.EntityID)
	if err != nil {
		return nil, nil, err
	}

	v, ok := m.Variant(params.VariantID)
	if !ok {
		return nil, nil, model.ErrVariantNotFound
	}

	return m, v, nil
}

func (s *service) matching(ctx context.Context, params model.SyncParams) ([]*model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	return s.products.ListByVariant(ctx, params.EntityType, params.EntityID, params.VariantID)
}

func (s *service) withWrite(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()
	return fn(ctx)
}

func (s *service) publish(ctx context.Context, res *model.SyncResult) {
	if s.events == nil {
		return
	}

	event := model.PriceSyncedEvent{
		EventID:        uuid.NewString(),
		EntityType:     res.EntityType,
		EntityID:       res.EntityID,
		EntityName:     res.EntityName,
		VariantID:      res.VariantID,
		VariantName:    res.VariantName,
		OldPrice:       res.OldPrice,
		NewPrice:       res.NewPrice,
		Unit:           res.Unit,
		SyncedProducts: res.SyncedProducts,
		FailedProducts: lo.Map(res.Failed(), func(o model.ProductOutcome, _ int) string { return o.ProductID }),
		SyncedAt:       res.SyncedAt,
	}

	if err := s.events.SendPriceSynced(ctx, event); err != nil {
		logger.Warn(ctx, "publish price synced event",
			logger.String("variant_id", res.VariantID),
			logger.ErrorF(err),
		)
	}
}

func (s *service) observe(t model.EntityType, outcome string, synced, failed int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.SyncFinished(t, outcome, synced, failed, time.Since(start))
}

// applyVariantPrice is the single repricing path shared by Preview and Synchronize.
func applyVariantPrice(p *model.Product, params model.SyncParams) int {
	n := p.SetVariantPrice(params.EntityType, params.EntityID, params.VariantID, params.NewPrice)
	pricing.Reprice(p)
	return n
}

func priceDelta(current, next float64) decimal.Decimal {
	return decimal.NewFromFloat(next).Sub(decimal.NewFromFloat(current)).Round(2)
}

func normalize(params model.SyncParams) (model.SyncParams, error) {
	params.EntityID = strings.TrimSpace(params.EntityID)
	params.VariantID = strings.TrimSpace(params.VariantID)

	var errs []error
	if !params.EntityType.Valid() {
		errs = append(errs, fmt.Errorf("entity type must be %q or %q", model.EntityTypeMetal, model.EntityTypeGemstone))
	}
	if params.EntityID == "" {
		errs = append(errs, errors.New("entity id must be non-empty"))
	}
	if params.VariantID == "" {
		errs = append(errs, errors.New("variant id must be non-empty"))
	}
	if math.IsNaN(params.NewPrice) || math.IsInf(params.NewPrice, 0) {
		errs = append(errs, errors.New("new price must be a finite number"))
	} else if params.NewPrice < 0 {
		errs = append(errs, errors.New("new price must be non-negative"))
	}

	if len(errs) > 0 {
		return params, errors.Join(append([]error{model.ErrValidation}, errs...)...)
	}
	return params, nil
}

func lockKey(params model.SyncParams) string {
	return strings.ToLower(params.EntityType.String() + "/" + params.EntityID + "/" + params.VariantID)
}

func outcomeOf(err error) string {
	if errors.Is(err, model.ErrMaterialNotFound) || errors.Is(err, model.ErrVariantNotFound) {
		return OutcomeNotFound
	}
	return OutcomeError
}
