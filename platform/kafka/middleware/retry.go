package middleware

import (
	"context"
	"time"

	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type WarnLogger interface {
	Warn(ctx context.Context, msg string, fields ...logger.Field)
}

// Retry re-runs a failing handler up to attempts times, doubling the pause after each failure.
// The last error is returned so the consumer does not mark the message.
func Retry(l WarnLogger, attempts int, backoff time.Duration) kafka.Middleware {
	if attempts < 1 {
		attempts = 1
	}

	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) error {
			wait := backoff

			var err error
			for attempt := 1; ; attempt++ {
				if err = next(ctx, msg); err == nil || attempt == attempts {
					return err
				}

				l.Warn(ctx, "kafka handler failed, retrying",
					logger.ErrorF(err),
					logger.Int("attempt", attempt),
					logger.Duration("backoff", wait),
					logger.String("topic", msg.Topic),
				)

				t := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					t.Stop()
					return err
				case <-t.C:
				}
				wait *= 2
			}
		}
	}
}
