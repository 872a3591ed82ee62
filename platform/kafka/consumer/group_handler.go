package consumer

import (
	"fmt"

	"github.com/IBM/sarama"

	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type groupHandler struct {
	handler kafka.MessageHandler
	logger  Logger
}

func newGroupHandler(handler kafka.MessageHandler, logger Logger) *groupHandler {
	return &groupHandler{
		handler: handler,
		logger:  logger,
	}
}

func (g *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (g *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (g *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				g.logger.Info(ctx, "kafka message channel closed")
				return nil
			}

			// A failed message stays unmarked and the claim ends, so the group
			// rejoins from the last committed offset and redelivers it.
			if err := g.handler(ctx, fromSarama(message)); err != nil {
				g.logger.Error(ctx, "kafka handler error",
					logger.ErrorF(err),
					logger.String("topic", message.Topic),
					logger.Int("partition", int(message.Partition)),
					logger.Any("offset", message.Offset),
				)
				return fmt.Errorf("handle %s/%d@%d: %w", message.Topic, message.Partition, message.Offset, err)
			}

			session.MarkMessage(message, "")

		case <-ctx.Done():
			return nil
		}
	}
}

func fromSarama(m *sarama.ConsumerMessage) kafka.Message {
	headers := make(map[string][]byte, len(m.Headers))
	for _, h := range m.Headers {
		if h != nil && h.Key != nil {
			headers[string(h.Key)] = h.Value
		}
	}

	return kafka.Message{
		Key:            m.Key,
		Value:          m.Value,
		Topic:          m.Topic,
		Partition:      m.Partition,
		Offset:         m.Offset,
		Timestamp:      m.Timestamp,
		BlockTimestamp: m.BlockTimestamp,
		Headers:        headers,
	}
}
