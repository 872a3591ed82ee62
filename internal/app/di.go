package app

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/you-humble/jewelry-pricing/internal/config"
	"github.com/you-humble/jewelry-pricing/internal/converter"
	"github.com/you-humble/jewelry-pricing/internal/metrics"
	"github.com/you-humble/jewelry-pricing/internal/model"
	historyrepo "github.com/you-humble/jewelry-pricing/internal/repository/history"
	materialrepo "github.com/you-humble/jewelry-pricing/internal/repository/material"
	productrepo "github.com/you-humble/jewelry-pricing/internal/repository/product"
	rateconsumer "github.com/you-humble/jewelry-pricing/internal/service/consumer/rate"
	materialsvc "github.com/you-humble/jewelry-pricing/internal/service/material"
	syncsvc "github.com/you-humble/jewelry-pricing/internal/service/pricesync"
	pricesyncproducer "github.com/you-humble/jewelry-pricing/internal/service/producer/pricesync"
	productsvc "github.com/you-humble/jewelry-pricing/internal/service/product"
	thttp "github.com/you-humble/jewelry-pricing/internal/transport/http/pricing/v1"
	"github.com/you-humble/jewelry-pricing/platform/closer"
	"github.com/you-humble/jewelry-pricing/platform/kafka"
	"github.com/you-humble/jewelry-pricing/platform/kafka/consumer"
	"github.com/you-humble/jewelry-pricing/platform/kafka/middleware"
	"github.com/you-humble/jewelry-pricing/platform/kafka/producer"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

const (
	variantRateAttempts = 3
	variantRateBackoff  = 500 * time.Millisecond
)

type Converter interface {
	PriceSyncedToPayload(e model.PriceSyncedEvent) ([]byte, error)
	VariantRateToModel(data []byte) (model.SyncParams, error)
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

type MaterialRepository interface {
	syncsvc.MaterialRepository
	materialsvc.MaterialReader
	materialrepo.Seeder
	indexer
}

type ProductRepository interface {
	syncsvc.ProductRepository
	productsvc.ProductStore
	indexer
}

type HistoryRepository interface {
	syncsvc.HistoryRepository
	indexer
}

type PriceSyncService interface {
	thttp.PriceSyncService
	rateconsumer.Synchronizer
}

type RateConsumer interface {
	RunVariantRateConsume(ctx context.Context) error
}

type Handler interface {
	Routes(r chi.Router)
}

type di struct {
	mongo *mongo.Client
	db    *mongo.Database

	materialRepository MaterialRepository
	productRepository  ProductRepository
	historyRepository  HistoryRepository

	registry     *prometheus.Registry
	syncMetrics  *metrics.SyncMetrics
	httpMetrics  *metrics.HTTPMetrics
	conv         Converter
	eventsWired  bool
	events       syncsvc.EventProducer
	syncProducer sarama.SyncProducer

	consumerGroup       sarama.ConsumerGroup
	variantRateConsumer kafka.Consumer
	rateConsumer        RateConsumer

	priceSyncService PriceSyncService
	productService   thttp.ProductService
	materialService  thttp.MaterialService
	handler          Handler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) Database(ctx context.Context) *mongo.Database {
	if d.db == nil {
		d.db = d.MongoDB(ctx).Database(config.C().Mongo.DatabaseName())
	}

	return d.db
}

func (d *di) Pinger(ctx context.Context) mongoPinger {
	return mongoPinger{client: d.MongoDB(ctx)}
}

func (d *di) MaterialRepository(ctx context.Context) MaterialRepository {
	if d.materialRepository == nil {
		cfg := config.C().Mongo
		d.materialRepository = materialrepo.NewMaterialRepository(
			d.Database(ctx).Collection(cfg.MetalsCollection()),
			d.Database(ctx).Collection(cfg.GemstonesCollection()),
		)
	}

	return d.materialRepository
}

func (d *di) ProductRepository(ctx context.Context) ProductRepository {
	if d.productRepository == nil {
		d.productRepository = productrepo.NewProductRepository(
			d.Database(ctx).Collection(config.C().Mongo.ProductsCollection()),
		)
	}

	return d.productRepository
}

func (d *di) HistoryRepository(ctx context.Context) HistoryRepository {
	if d.historyRepository == nil {
		d.historyRepository = historyrepo.NewHistoryRepository(
			d.Database(ctx).Collection(config.C().Mongo.PriceHistoryCollection()),
		)
	}

	return d.historyRepository
}

func (d *di) Registry(_ context.Context) *prometheus.Registry {
	if d.registry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		d.registry = reg
	}

	return d.registry
}

func (d *di) SyncMetrics(ctx context.Context) *metrics.SyncMetrics {
	if d.syncMetrics == nil {
		d.syncMetrics = metrics.NewSyncMetrics(d.Registry(ctx))
	}

	return d.syncMetrics
}

func (d *di) HTTPMetrics(ctx context.Context) *metrics.HTTPMetrics {
	if d.httpMetrics == nil {
		d.httpMetrics = metrics.NewHTTPMetrics(d.Registry(ctx))
	}

	return d.httpMetrics
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.PriceSyncedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

// EventProducer is nil when Kafka is disabled; price sync then skips publishing.
func (d *di) EventProducer(ctx context.Context) syncsvc.EventProducer {
	if !d.eventsWired {
		d.eventsWired = true

		if !config.C().Kafka.Enabled() {
			logger.Info(ctx, "kafka disabled, price synced events will not be published")
			return nil
		}

		d.events = pricesyncproducer.NewPriceSyncedProducer(
			producer.NewProducer(
				d.SyncProducer(ctx),
				config.C().Kafka.PriceSyncedTopic(),
				logger.L(),
			),
			d.KafkaConverter(ctx),
		)
	}

	return d.events
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.VariantRateConsumerGroupID(),
			cfg.Kafka.VariantRateConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) VariantRateConsumer(ctx context.Context) kafka.Consumer {
	if d.variantRateConsumer == nil {
		d.variantRateConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.VariantRateTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
			middleware.Retry(logger.L(), variantRateAttempts, variantRateBackoff),
		)
	}

	return d.variantRateConsumer
}

func (d *di) RateConsumer(ctx context.Context) RateConsumer {
	if d.rateConsumer == nil {
		d.rateConsumer = rateconsumer.NewRateConsumer(
			d.VariantRateConsumer(ctx),
			d.KafkaConverter(ctx),
			d.PriceSyncService(ctx),
		)
	}

	return d.rateConsumer
}

func (d *di) PriceSyncService(ctx context.Context) PriceSyncService {
	if d.priceSyncService == nil {
		d.priceSyncService = syncsvc.NewPriceSyncService(
			d.MaterialRepository(ctx),
			d.ProductRepository(ctx),
			d.HistoryRepository(ctx),
			d.EventProducer(ctx),
			d.SyncMetrics(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.priceSyncService
}

func (d *di) ProductService(ctx context.Context) thttp.ProductService {
	if d.productService == nil {
		d.productService = productsvc.NewProductService(
			d.MaterialRepository(ctx),
			d.ProductRepository(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.productService
}

func (d *di) MaterialService(ctx context.Context) thttp.MaterialService {
	if d.materialService == nil {
		d.materialService = materialsvc.NewMaterialService(
			d.MaterialRepository(ctx),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.materialService
}

func (d *di) PricingHandler(ctx context.Context) Handler {
	if d.handler == nil {
		d.handler = thttp.NewPricingHandler(
			d.ProductService(ctx),
			d.MaterialService(ctx),
			d.PriceSyncService(ctx),
		)
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
