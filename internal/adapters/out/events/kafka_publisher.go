package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// RoutingKeyHeader carries the routing key on Kafka records, where all order
// events share one topic.
const RoutingKeyHeader = "routing_key"

// KafkaPublisher produces order events synchronously to a single topic.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("tailorshop"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &KafkaPublisher{
		client: client,
		topic:  topic,
		logger: logger.With("component", "KafkaPublisher"),
	}, nil
}

func newRecord(topic, routingKey string, payload []byte) *kgo.Record {
	return &kgo.Record{
		Topic: topic,
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: RoutingKeyHeader, Value: []byte(routingKey)},
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
}

// Publish implements ports.EventPublisher.
func (p *KafkaPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	if err := p.client.ProduceSync(ctx, newRecord(p.topic, routingKey, payload)).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce %s: %w", routingKey, err)
	}

	p.logger.DebugContext(ctx, "record produced",
		"topic", p.topic,
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.client.Close()
	return nil
}
