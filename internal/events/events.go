package events

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/config"
)

const (
	BackendNone  = "none"
	BackendAMQP  = "amqp"
	BackendKafka = "kafka"
)

// Publisher forwards audit events to a message broker.
type Publisher interface {
	audit.Sink
	Close() error
}

// New builds the publisher selected by cfg.EventsBackend. It returns a nil
// Publisher for the "none" backend.
func New(cfg *config.Config, log *zap.Logger) (Publisher, error) {
	switch cfg.EventsBackend {
	case "", BackendNone:
		return nil, nil
	case BackendAMQP:
		return NewAMQPPublisher(cfg.AMQPURL, cfg.EventsTopic, log), nil
	case BackendKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka backend needs KAFKA_BROKERS")
		}
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventsTopic), nil
	}
	return nil, fmt.Errorf("unknown events backend %q", cfg.EventsBackend)
}

func encode(ev audit.Event) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return body, nil
}
