package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type namedFn struct {
	name string
	fn   func(context.Context) error
}

// Closer runs registered shutdown functions in reverse order of registration.
type Closer struct {
	mu     sync.Mutex
	once   sync.Once
	funcs  []namedFn
	logger Logger
	done   chan struct{}
}

var global = New()

func New() *Closer {
	return &Closer{
		logger: logger.NoopLogger{},
		done:   make(chan struct{}),
	}
}

func SetLogger(l Logger)                                   { global.SetLogger(l) }
func AddNamed(name string, fn func(context.Context) error) { global.AddNamed(name, fn) }
func CloseAll(ctx context.Context) error                   { return global.CloseAll(ctx) }

func (c *Closer) SetLogger(l Logger) {
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
}

func (c *Closer) AddNamed(name string, fn func(context.Context) error) {
	c.mu.Lock()
	c.funcs = append(c.funcs, namedFn{name: name, fn: fn})
	c.mu.Unlock()
}

// CloseAll is safe to call more than once; only the first call runs the functions.
func (c *Closer) CloseAll(ctx context.Context) error {
	var result error

	c.once.Do(func() {
		defer close(c.done)

		c.mu.Lock()
		funcs := c.funcs
		c.funcs = nil
		log := c.logger
		c.mu.Unlock()

		var errs []error
		for i := len(funcs) - 1; i >= 0; i-- {
			f := funcs[i]
			start := time.Now()

			if err := f.fn(ctx); err != nil {
				log.Error(ctx, "close failed", logger.String("name", f.name), logger.ErrorF(err))
				errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
				continue
			}

			log.Info(ctx, "closed", logger.String("name", f.name), logger.Duration("took", time.Since(start)))
		}

		result = errors.Join(errs...)
	})

	return result
}

func (c *Closer) Done() <-chan struct{} { return c.done }
