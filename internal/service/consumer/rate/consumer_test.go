package rateconsumer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/jewelry-pricing/internal/converter"
	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/internal/service/mocks"
	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/kafka/middleware"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

// replayConsumer feeds fixed messages to the handler and stops at the first error.
type replayConsumer struct {
	msgs        []kafka.Message
	middlewares []kafka.Middleware
}

func (c replayConsumer) Consume(ctx context.Context, handler kafka.MessageHandler) error {
	handler = kafka.Chain(handler, c.middlewares...)
	for _, m := range c.msgs {
		if err := handler(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func TestVariantRateHandler(t *testing.T) {
	t.Parallel()

	params := model.SyncParams{EntityType: model.EntityTypeMetal, EntityID: "m-1", VariantID: "v-22", NewPrice: 6400}
	valid := kafka.Message{Value: []byte(`{"entity_type":"metal","entity_id":"m-1","variant_id":"v-22","new_price":6400}`)}

	tests := []struct {
		name    string
		msg     kafka.Message
		setup   func(svc *mocks.MockSynchronizer)
		wantErr bool
	}{
		{
			name: "applied",
			msg:  valid,
			setup: func(svc *mocks.MockSynchronizer) {
				svc.On("Synchronize", mock.Anything, params).Return(&model.SyncResult{SyncedProducts: 3}, nil).Once()
			},
		},
		{
			name:  "undecodable payload is skipped",
			msg:   kafka.Message{Value: []byte("not json")},
			setup: func(svc *mocks.MockSynchronizer) {},
		},
		{
			name: "unknown variant is skipped",
			msg:  valid,
			setup: func(svc *mocks.MockSynchronizer) {
				svc.On("Synchronize", mock.Anything, params).
					Return((*model.SyncResult)(nil), fmt.Errorf("pricesync.service.Synchronize: %w", model.ErrVariantNotFound)).
					Once()
			},
		},
		{
			name: "invalid price is skipped",
			msg:  valid,
			setup: func(svc *mocks.MockSynchronizer) {
				svc.On("Synchronize", mock.Anything, params).
					Return((*model.SyncResult)(nil), errors.Join(model.ErrValidation, errors.New("new price must be non-negative"))).
					Once()
			},
		},
		{
			name: "storage failure is returned unacknowledged",
			msg:  valid,
			setup: func(svc *mocks.MockSynchronizer) {
				svc.On("Synchronize", mock.Anything, params).Return((*model.SyncResult)(nil), errors.New("mongo: timeout")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewMockSynchronizer(t)
			tt.setup(svc)

			c := NewRateConsumer(replayConsumer{msgs: []kafka.Message{tt.msg}}, converter.NewKafkaConverter(), svc)
			err := c.RunVariantRateConsume(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, "mongo: timeout")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestVariantRateRetriedAfterStorageFailure(t *testing.T) {
	t.Parallel()

	params := model.SyncParams{EntityType: model.EntityTypeGemstone, EntityID: "g-1", VariantID: "vvs1", NewPrice: 47000}
	msg := kafka.Message{Value: []byte(`{"entity_type":"gemstone","entity_id":"g-1","variant_id":"vvs1","new_price":47000}`)}

	svc := mocks.NewMockSynchronizer(t)
	svc.On("Synchronize", mock.Anything, params).Return((*model.SyncResult)(nil), errors.New("mongo: timeout")).Once()
	svc.On("Synchronize", mock.Anything, params).Return(&model.SyncResult{SyncedProducts: 2}, nil).Once()

	c := NewRateConsumer(replayConsumer{
		msgs:        []kafka.Message{msg},
		middlewares: []kafka.Middleware{middleware.Retry(logger.NoopLogger{}, 3, time.Millisecond)},
	}, converter.NewKafkaConverter(), svc)

	require.NoError(t, c.RunVariantRateConsume(context.Background()))
	svc.AssertNumberOfCalls(t, "Synchronize", 2)
}
