package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/you-humble/jewelry-pricing/internal/config"
	"github.com/you-humble/jewelry-pricing/internal/metrics"
	"github.com/you-humble/jewelry-pricing/internal/model"
	materialrepo "github.com/you-humble/jewelry-pricing/internal/repository/material"
	"github.com/you-humble/jewelry-pricing/internal/transport/http/health"
	"github.com/you-humble/jewelry-pricing/platform/closer"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initCollections,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	closer.AddNamed("Logger", func(context.Context) error {
		_ = logger.Sync()
		return nil
	})
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

// initCollections creates the indexes the variant lookups rely on and optionally
// seeds an empty catalog.
func (a *app) initCollections(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.C().Server.DBWriteTimeout()*4)
	defer cancel()

	for name, ix := range map[string]indexer{
		"materials":     a.di.MaterialRepository(ctx),
		"products":      a.di.ProductRepository(ctx),
		"price_history": a.di.HistoryRepository(ctx),
	} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			logger.Error(ctx, "failed to ensure indexes", logger.String("collection", name), logger.ErrorF(err))
			return err
		}
	}

	if !config.C().Server.SeedCatalog() {
		return nil
	}

	if err := materialrepo.MaterialsBootstrap(ctx, a.di.MaterialRepository(ctx)); err != nil {
		logger.Error(ctx, "failed to seed material catalog", logger.ErrorF(err))
		return err
	}
	for _, t := range []model.EntityType{model.EntityTypeMetal, model.EntityTypeGemstone} {
		n, err := a.di.MaterialRepository(ctx).Count(ctx, t)
		if err != nil {
			return err
		}
		logger.Info(ctx, "material catalog ready", logger.String("entity_type", t.String()), logger.Any("materials", n))
	}

	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Logger,
		a.di.HTTPMetrics(ctx).Middleware,
	)

	r.Route("/api/v1", a.di.PricingHandler(ctx).Routes)

	r.HandleFunc("/health", health.HealthCheck)
	r.HandleFunc("/ready", health.Readiness(a.di.Pinger(ctx), cfg.Server.DBReadTimeout()))
	r.Handle("/metrics", metrics.Handler(a.di.Registry(ctx)))

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}

	closer.AddNamed("HTTP server", a.server.Shutdown)

	return nil
}

func (a *app) run(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)

	if config.C().Kafka.Enabled() {
		eg.Go(func() error {
			logger.Info(egCtx,
				"🚀 variant rate consumer running",
				logger.Strings("kafka_brokers", config.C().Kafka.Brokers()),
				logger.String("topic", config.C().Kafka.VariantRateTopic()),
			)
			err := a.di.RateConsumer(egCtx).RunVariantRateConsume(egCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		})
	}

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 pricing server listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		gracefulShutdown()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
