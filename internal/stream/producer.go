package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"movibus/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// EventType enumerates reservation lifecycle events published for
// downstream consumers (reporting, reconciliation).
type EventType string

const (
	EventTicketSold      EventType = "TICKET_SOLD"
	EventTicketCancelled EventType = "TICKET_CANCELLED"
	EventHoldCreated     EventType = "HOLD_CREATED"
	EventHoldReleased    EventType = "HOLD_RELEASED"
	EventHoldsExpired    EventType = "HOLDS_EXPIRED"
)

// Event is the wire payload for one reservation lifecycle change. ID is
// assigned on publish so consumers can deduplicate redeliveries.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	TripID     uint      `json:"trip_id"`
	SeatNumber int       `json:"seat_number"`
	TicketID   uint      `json:"ticket_id,omitempty"`
	HoldID     uint      `json:"hold_id,omitempty"`
	UserID     uint      `json:"user_id,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	Count      int       `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PartitionKey routes all events for one trip to the same partition so
// per-trip ordering is preserved. Sweep summaries carry no trip and share
// one key.
func (e *Event) PartitionKey() string {
	if e.TripID == 0 {
		return "sweep"
	}
	return fmt.Sprintf("trip-%d", e.TripID)
}

// Producer publishes reservation events. A nil-safe no-op implementation
// backs deployments without Kafka.
type Producer interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// kafkaProducer publishes events through a sarama sync producer.
type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaProducer creates a reservation event producer, or a no-op
// producer when Kafka is disabled in config.
func NewKafkaProducer(cfg config.KafkaConfig) (Producer, error) {
	if !cfg.Enabled {
		return NewNoopProducer(), nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Reservation event producer created (topic %s)", cfg.Topic)
	return &kafkaProducer{
		producer: producer,
		topic:    cfg.Topic,
	}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.ID)},
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to publish reservation event: %w", err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// noopProducer discards events. Used when Kafka is disabled.
type noopProducer struct{}

func NewNoopProducer() Producer {
	return &noopProducer{}
}

func (p *noopProducer) Publish(ctx context.Context, event *Event) error { return nil }

func (p *noopProducer) Close() error { return nil }
