package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/event"
	"catalog-api/internal/metrics"
	"catalog-api/internal/model"
	"catalog-api/internal/rating"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
)

// ratingAggregator implements RatingAggregator with a full re-scan of the
// product's reviews on every call. It takes no locks: concurrent mutations
// of one product race and the last write wins.
type ratingAggregator struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	publisher   event.Publisher
	logger      zerolog.Logger
}

// NewRatingAggregator creates a new rating aggregator.
func NewRatingAggregator(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	publisher event.Publisher,
	logger zerolog.Logger,
) RatingAggregator {
	return &ratingAggregator{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		publisher:   publisher,
		logger:      logger.With().Str("service", "rating-aggregator").Logger(),
	}
}

// Recompute stores the rounded mean of the product's ratings.
func (a *ratingAggregator) Recompute(ctx context.Context, productID string) (float64, error) {
	ratings, err := a.reviewRepo.RatingsByProduct(ctx, productID)
	if err != nil {
		a.logger.Error().Err(err).Str("product_id", productID).Msg("failed to read ratings")
		return 0, fmt.Errorf("failed to read ratings: %w", err)
	}

	avg := rating.Average(ratings)

	if err := a.productRepo.UpdateAverageRating(ctx, productID, avg); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			a.logger.Warn().Str("product_id", productID).Msg("product disappeared before its rating was stored")
			return 0, err
		}
		a.logger.Error().Err(err).Str("product_id", productID).Msg("failed to store average rating")
		return 0, fmt.Errorf("failed to store average rating: %w", err)
	}

	metrics.RatingRecomputations.Inc()

	a.logger.Debug().
		Str("product_id", productID).
		Int("review_count", len(ratings)).
		Float64("average_rating", avg).
		Msg("average rating recomputed")

	if err := a.publisher.PublishRatingUpdated(ctx, productID, avg, len(ratings)); err != nil {
		metrics.RatingEventsPublished.WithLabelValues("error").Inc()
		a.logger.Warn().Err(err).Str("product_id", productID).Msg("failed to publish rating event")
	} else {
		metrics.RatingEventsPublished.WithLabelValues("ok").Inc()
	}

	return avg, nil
}
