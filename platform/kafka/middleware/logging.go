package middleware

import (
	"context"

	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type InfoLogger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
}

func Logging(l InfoLogger) kafka.Middleware {
	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) error {
			l.Info(ctx, "kafka message received",
				logger.String("topic", msg.Topic),
				logger.String("key", string(msg.Key)),
			)
			return next(ctx, msg)
		}
	}
}
