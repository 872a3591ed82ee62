package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Enabled                    bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers                    []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	PriceSyncedTopicName       string   `env:"PRICE_SYNCED_TOPIC_NAME" envDefault:"jewelry.price-synced"`
	VariantRateTopicName       string   `env:"VARIANT_RATE_TOPIC_NAME" envDefault:"jewelry.variant-rate"`
	VariantRateConsumerGroupID string   `env:"VARIANT_RATE_CONSUMER_GROUP_ID" envDefault:"jewelry-pricing"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Enabled() bool                      { return cfg.raw.Enabled }
func (cfg *kafka) Brokers() []string                  { return cfg.raw.Brokers }
func (cfg *kafka) PriceSyncedTopic() string           { return cfg.raw.PriceSyncedTopicName }
func (cfg *kafka) VariantRateTopic() string           { return cfg.raw.VariantRateTopicName }
func (cfg *kafka) VariantRateConsumerGroupID() string { return cfg.raw.VariantRateConsumerGroupID }

func (cfg *kafka) VariantRateConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}

// Синхронный producer: Send должен вернуть ошибку доставки.
func (cfg *kafka) PriceSyncedProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}
