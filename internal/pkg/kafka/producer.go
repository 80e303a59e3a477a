package kafka

import (
	"context"
	"fmt"

	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"
	"github.com/IBM/sarama"
)

const producerMaxRetries = 3

func NewProducerConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	// SyncProducer требует Return.Successes
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Retry.Max = producerMaxRetries
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	return cfg, nil
}

// NewSyncProducer ждет доступности брокеров так же, как consumer, и только потом создает продюсер.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.SyncProducer, error) {
	saramaConfig, err := NewProducerConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build producer config: %w", err)
	}

	brokers := Brokers(cfg.Brokers)
	producerLog := log.With(
		logger.NewField("component", "kafka-producer"),
		logger.NewField("brokers", brokers),
	)

	if err := pingKafka(ctx, producerLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}
	return producer, nil
}
