package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"fulfillment/internal/pkg/config"
	"fulfillment/pkg/logger"
)

// Producer publishes domain events to the exchange topic with the routing key
// as the message key. The JSON envelope always carries the explicit "type" tag
// and a "timestamp" field.
type Producer struct {
	log      logger.Logger
	producer sarama.SyncProducer
	exchange string
}

func NewProducer(log logger.Logger, cfg *config.Kafka, brokers []string) (*Producer, error) {
	saramaConfig := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", cfg.Sarama.Version, err)
	}
	saramaConfig.Version = version

	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	producerLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("exchange", cfg.Exchange),
	)

	return &Producer{
		log:      producerLog,
		producer: producer,
		exchange: cfg.Exchange,
	}, nil
}

func (p *Producer) Publish(_ context.Context, topic string, payload map[string]any) error {
	envelope := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		envelope[k] = v
	}
	envelope["type"] = topic
	envelope["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", topic, err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.exchange,
		Key:   sarama.StringEncoder(topic),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", topic, err)
	}

	p.log.With(
		logger.NewField("topic", topic),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	).Debug("event published")

	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
