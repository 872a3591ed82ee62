package rateconsumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type Converter interface {
	VariantRateToModel(data []byte) (model.SyncParams, error)
}

type Synchronizer interface {
	Synchronize(ctx context.Context, params model.SyncParams) (*model.SyncResult, error)
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	svc      Synchronizer
}

func NewRateConsumer(
	consumer kafka.Consumer,
	conv Converter,
	svc Synchronizer,
) *service {
	return &service{consumer: consumer, conv: conv, svc: svc}
}

func (s *service) RunVariantRateConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting variant rate consumer")

	if err := s.consumer.Consume(ctx, s.variantRateHandler); err != nil {
		logger.Error(ctx, "Consume from variant rate topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

// Messages that can never succeed are acknowledged so they do not block the partition.
func (s *service) variantRateHandler(ctx context.Context, msg kafka.Message) error {
	params, err := s.conv.VariantRateToModel(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode variant rate, skipping", logger.ErrorF(err), logger.Any("offset", msg.Offset))
		return nil
	}

	ctx = logger.ContextWithFields(ctx,
		logger.String("entity_type", params.EntityType.String()),
		logger.String("entity_id", params.EntityID),
		logger.String("variant_id", params.VariantID),
	)

	res, err := s.svc.Synchronize(ctx, params)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrMaterialNotFound),
		errors.Is(err, model.ErrVariantNotFound):
		logger.Warn(ctx, "Variant rate rejected, skipping", logger.ErrorF(err))
		return nil
	default:
		logger.Error(ctx, "consumer.Synchronize", logger.ErrorF(err))
		return fmt.Errorf("synchronize variant rate: %w", err)
	}

	logger.Info(ctx, "Variant rate applied",
		logger.Int("synced_products", res.SyncedProducts),
		logger.Int("failed_products", len(res.Failed())),
	)

	return nil
}
