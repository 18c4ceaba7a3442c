package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/config"
)

func TestNewSelectsBackend(t *testing.T) {
	log := zap.NewNop()

	p, err := New(&config.Config{EventsBackend: "none"}, log)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = New(&config.Config{EventsBackend: "amqp", AMQPURL: "amqp://x", EventsTopic: "q"}, log)
	require.NoError(t, err)
	assert.IsType(t, &AMQPPublisher{}, p)

	p, err = New(&config.Config{EventsBackend: "kafka", KafkaBrokers: []string{"k:9092"}, EventsTopic: "t"}, log)
	require.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, p)
	require.NoError(t, p.Close())

	_, err = New(&config.Config{EventsBackend: "kafka"}, log)
	assert.Error(t, err)

	_, err = New(&config.Config{EventsBackend: "pigeon"}, log)
	assert.Error(t, err)
}

func TestEncodeAndKey(t *testing.T) {
	id := uuid.New()
	ev := audit.Event{
		Action:     "session_ended",
		Entity:     "session",
		EntityID:   &id,
		OccurredAt: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}

	body, err := encode(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "session_ended", decoded["action"])
	assert.Equal(t, id.String(), decoded["entity_id"])

	assert.Equal(t, []byte(id.String()), messageKey(ev))
	assert.Equal(t, []byte("report"), messageKey(audit.Event{Entity: "report"}))
}
