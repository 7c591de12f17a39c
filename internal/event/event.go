// Package event publishes catalog domain events.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// RatingUpdated is emitted after a product's average rating is stored.
	RatingUpdated = "product.rating_updated"

	aggregateProduct = "product"
	source           = "catalog-api"
)

// Event is the envelope written to the broker.
type Event struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Version       int             `json:"version"`
	Timestamp     time.Time       `json:"timestamp"`
	Source        string          `json:"source"`
	Data          json.RawMessage `json:"data"`
}

// RatingUpdatedData is the payload of a RatingUpdated event.
type RatingUpdatedData struct {
	ProductID     string  `json:"productId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// NewEvent wraps data in an envelope with a fresh ID and timestamp.
func NewEvent(eventType, aggregateID string, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	return &Event{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateProduct,
		Version:       1,
		Timestamp:     time.Now().UTC(),
		Source:        source,
		Data:          raw,
	}, nil
}

// Publisher announces rating changes to other systems.
type Publisher interface {
	// PublishRatingUpdated announces a product's new average rating.
	PublishRatingUpdated(ctx context.Context, productID string, averageRating float64, reviewCount int) error

	// Close flushes pending messages and releases resources.
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that discards every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishRatingUpdated(context.Context, string, float64, int) error {
	return nil
}

func (nopPublisher) Close() error {
	return nil
}
