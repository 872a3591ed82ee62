package consumer

import (
	"context"
	"errors"

	"github.com/IBM/sarama"

	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type consumer struct {
	group       sarama.ConsumerGroup
	topics      []string
	logger      Logger
	middlewares []kafka.Middleware
}

func NewConsumer(group sarama.ConsumerGroup, topics []string, logger Logger, middlewares ...kafka.Middleware) *consumer {
	return &consumer{
		group:       group,
		topics:      topics,
		logger:      logger,
		middlewares: middlewares,
	}
}

// Consume блокируется, пока не отменён ctx или не закрыта группа.
func (c *consumer) Consume(ctx context.Context, handler kafka.MessageHandler) error {
	gh := newGroupHandler(kafka.Chain(handler, c.middlewares...), c.logger)

	for {
		if err := c.group.Consume(ctx, c.topics, gh); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}

			c.logger.Error(ctx, "kafka consume error", logger.ErrorF(err), logger.Strings("topics", c.topics))
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Info(ctx, "kafka consumer group rebalancing", logger.Strings("topics", c.topics))
	}
}
