package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
)

// KafkaPublisher writes events keyed by entity id, so every event of one
// appointment or session lands on the same partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Record(ctx context.Context, ev audit.Event) error {
	body, err := encode(ev)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   messageKey(ev),
		Value: body,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(ev.Action)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func messageKey(ev audit.Event) []byte {
	if ev.EntityID != nil {
		return []byte(ev.EntityID.String())
	}
	return []byte(ev.Entity)
}

var _ Publisher = (*KafkaPublisher)(nil)
