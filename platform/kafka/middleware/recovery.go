package middleware

import (
	"context"
	"fmt"

	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type ErrorLogger interface {
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

// Recovery превращает панику обработчика в ошибку, чтобы сообщение не было помечено.
func Recovery(l ErrorLogger) kafka.Middleware {
	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) (err error) {
			defer func() {
				if r := recover(); r != nil {
					l.Error(ctx, "recovered from panic in message processing",
						logger.Any("panic", r),
						logger.String("topic", msg.Topic),
					)
					err = fmt.Errorf("kafka handler panic: %v", r)
				}
			}()
			return next(ctx, msg)
		}
	}
}
