package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
	SeedCatalog() bool
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	DatabaseName() string
	MetalsCollection() string
	GemstonesCollection() string
	ProductsCollection() string
	PriceHistoryCollection() string
	DSN() string
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	PriceSyncedTopic() string
	VariantRateTopic() string
	VariantRateConsumerGroupID() string
	VariantRateConsumerConfig() *sarama.Config
	PriceSyncedProducerConfig() *sarama.Config
}
