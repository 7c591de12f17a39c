package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	topic  string
	logger zerolog.Logger
}

// NewKafkaPublisher creates a Publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	logger.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("kafka event publisher initialised")

	return newKafkaPublisher(w, topic, logger)
}

func newKafkaPublisher(w messageWriter, topic string, logger zerolog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		writer: w,
		topic:  topic,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}
}

// PublishRatingUpdated writes a RatingUpdated event keyed by product ID, so
// every update of one product lands on the same partition.
func (p *kafkaPublisher) PublishRatingUpdated(ctx context.Context, productID string, averageRating float64, reviewCount int) error {
	evt, err := NewEvent(RatingUpdated, productID, RatingUpdatedData{
		ProductID:     productID,
		AverageRating: averageRating,
		ReviewCount:   reviewCount,
	})
	if err != nil {
		return err
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(productID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
			{Key: "source", Value: []byte(evt.Source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().Err(err).
			Str("topic", p.topic).
			Str("product_id", productID).
			Msg("failed to publish rating event")
		return fmt.Errorf("failed to publish event to %s: %w", p.topic, err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Str("event_id", evt.EventID).
		Str("product_id", productID).
		Msg("rating event published")

	return nil
}

// Close flushes pending messages and closes the writer.
func (p *kafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}
