package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	aggregator  RatingAggregator
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	aggregator RatingAggregator,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		aggregator:  aggregator,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// List returns the reviews of a product, most recent first.
func (s *reviewService) List(ctx context.Context, productID string) ([]model.Review, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	return reviews, nil
}

// Create adds a review to a product and recomputes its average rating.
func (s *reviewService) Create(ctx context.Context, productID string, req *model.CreateReviewRequest) (*model.Review, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &model.Review{
		ProductID: productID,
		Author:    req.Author,
		Rating:    req.RatingValue(),
		Comment:   req.Comment,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if _, err := s.aggregator.Recompute(ctx, productID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("review_id", review.ID).
		Float64("rating", review.Rating).
		Msg("review created successfully")

	return review, nil
}

// Update overwrites the supplied fields of a review and recomputes the
// product's average rating.
func (s *reviewService) Update(ctx context.Context, productID, id string, req *model.UpdateReviewRequest) (*model.Review, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetForProduct(ctx, productID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("review_id", id).Msg("failed to get review")
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		s.logger.Debug().Str("product_id", productID).Str("review_id", id).Msg("review not found")
		return nil, model.ErrReviewNotFound
	}

	ratingChanged := req.Apply(review)
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("review_id", id).Msg("failed to update review")
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if _, err := s.aggregator.Recompute(ctx, productID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("review_id", id).
		Bool("rating_changed", ratingChanged).
		Msg("review updated successfully")

	return review, nil
}

// Delete removes a review of the product and recomputes its average rating.
func (s *reviewService) Delete(ctx context.Context, productID, id string) error {
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, productID, id); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			s.logger.Debug().Str("product_id", productID).Str("review_id", id).Msg("review not found")
			return err
		}
		s.logger.Error().Err(err).Str("review_id", id).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if _, err := s.aggregator.Recompute(ctx, productID); err != nil {
		return err
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("review_id", id).
		Msg("review deleted successfully")

	return nil
}

func (s *reviewService) requireProduct(ctx context.Context, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get product")
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}
	return nil
}
