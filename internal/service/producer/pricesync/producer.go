package pricesyncproducer

import (
	"context"
	"fmt"

	"github.com/you-humble/jewelry-pricing/internal/converter"
	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/platform/kafka"
)

type KafkaProducer interface {
	Send(ctx context.Context, key, value []byte, headers ...kafka.Header) error
}

type Converter interface {
	PriceSyncedToPayload(e model.PriceSyncedEvent) ([]byte, error)
}

type service struct {
	producer KafkaProducer
	conv     Converter
}

func NewPriceSyncedProducer(producer KafkaProducer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// SendPriceSynced keys the record by variant id so events for one variant keep their order.
func (s *service) SendPriceSynced(ctx context.Context, event model.PriceSyncedEvent) error {
	payload, err := s.conv.PriceSyncedToPayload(event)
	if err != nil {
		return fmt.Errorf("converter price_synced_to_payload error: %w", err)
	}

	if err := s.producer.Send(ctx, []byte(event.VariantID), payload,
		kafka.Header{Key: "event_type", Value: converter.PriceSyncedEventType},
		kafka.Header{Key: "event_id", Value: event.EventID},
	); err != nil {
		return fmt.Errorf("producer to price synced topic error: %w", err)
	}

	return nil
}
