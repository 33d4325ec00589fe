package alerts

import (
	"context"
	"encoding/json"

	"github.com/twmb/franz-go/pkg/kgo"

	dErrors "carepath/pkg/domain-errors"
)

// KafkaPublisher writes alerts to a Kafka topic, keyed by certification so
// alerts for one credential stay in one partition.
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	metrics *Metrics
}

// KafkaOption configures the KafkaPublisher.
type KafkaOption func(*KafkaPublisher)

// WithKafkaMetrics sets the metrics collector.
func WithKafkaMetrics(m *Metrics) KafkaOption {
	return func(p *KafkaPublisher) {
		p.metrics = m
	}
}

// NewKafkaPublisher creates a publisher producing to the given brokers and
// topic.
func NewKafkaPublisher(brokers []string, topic string, opts ...KafkaOption) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create kafka client")
	}
	p := &KafkaPublisher{client: client, topic: topic}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish produces the alert synchronously; the scan pass does not advance
// past an undelivered alert.
func (p *KafkaPublisher) Publish(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "marshal alert")
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(alert.CertificationID.String()),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		if p.metrics != nil {
			p.metrics.IncPublishFailures()
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "produce alert")
	}
	return nil
}

// Close flushes and releases the Kafka client.
func (p *KafkaPublisher) Close() error {
	p.client.Close()
	return nil
}
