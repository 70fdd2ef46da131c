// Package kafka publishes delivery mutation events.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/logx"
)

// Publisher sends mutation events to a topic. A nil *Publisher is a valid
// no-op publisher.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

// NewPublisher connects a sync producer. It returns nil, nil when brokers or
// topic are not configured.
func NewPublisher(brokers []string, topic string, logger logx.Logger) (*Publisher, error) {
	// не стартую если у кафки нет настроек
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return newPublisher(producer, topic, logger), nil
}

// NewProducerConfig returns the producer settings used by NewPublisher.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	return cfg
}

func newPublisher(producer sarama.SyncProducer, topic string, logger logx.Logger) *Publisher {
	logger = logx.OrNop(logger)
	return &Publisher{producer: producer, topic: topic, logger: logger}
}

// Publish sends ev keyed by delivery id, so events of one delivery keep
// their order within a partition.
func (p *Publisher) Publish(ctx context.Context, ev domain.MutationEvent) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dto := FromDomain(ev)
	value, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("encode mutation event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(dto.DeliveryID),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka send: %w", err)
	}
	p.logger.Debug("mutation event published",
		logx.String("delivery_id", dto.DeliveryID),
		logx.String("action", dto.Action),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close closes the producer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
