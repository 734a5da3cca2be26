package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher produces each event as a JSON record keyed by action.
// Emit waits for the broker acknowledgement.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	now    func() time.Time
}

// NewKafkaPublisher connects to brokers. The client is closed by Close.
func NewKafkaPublisher(brokers []string, topic string, opts ...kgo.Opt) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(append([]kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(0),
	}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic, now: time.Now}, nil
}

func (p *KafkaPublisher) Emit(ctx context.Context, event Event) error {
	record, err := p.record(event)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) record(event Event) (*kgo.Record, error) {
	event = event.stamp(p.now())
	value, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal audit event: %w", err)
	}
	return &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(event.Action),
		Value:     value,
		Timestamp: event.Timestamp,
	}, nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
