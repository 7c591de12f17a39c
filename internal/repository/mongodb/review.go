package mongodb

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reviewRepository implements the ReviewRepository interface using MongoDB.
type reviewRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewReviewRepository creates a new MongoDB-backed review repository.
func NewReviewRepository(db *mongo.Database, logger zerolog.Logger) repository.ReviewRepository {
	return &reviewRepository{
		coll:   db.Collection(ReviewsCollection),
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// ListByProduct returns all reviews of a product, most recent first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	pid, ok := objectID(productID)
	if !ok {
		return []model.Review{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"productId": pid}, opts)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	var docs []reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode reviews")
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	reviews := make([]model.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, doc.toModel())
	}
	return reviews, nil
}

// GetForProduct retrieves a review that belongs to the given product.
func (r *reviewRepository) GetForProduct(ctx context.Context, productID, id string) (*model.Review, error) {
	filter, ok := ownedReview(productID, id)
	if !ok {
		return nil, nil
	}

	var doc reviewDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", productID).Str("review_id", id).Msg("review not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	rv := doc.toModel()
	return &rv, nil
}

// Create inserts a review and assigns its ID.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	pid, ok := objectID(review.ProductID)
	if !ok {
		return model.ErrProductNotFound
	}

	doc := reviewDocument{
		ID:        primitive.NewObjectID(),
		ProductID: pid,
		Author:    review.Author,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Date:      review.Date,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	review.ID = doc.ID.Hex()
	return nil
}

// Update persists the author, rating and comment of an existing review.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	filter, ok := ownedReview(review.ProductID, review.ID)
	if !ok {
		return model.ErrReviewNotFound
	}

	update := bson.M{"$set": bson.M{
		"author":    review.Author,
		"rating":    review.Rating,
		"comment":   review.Comment,
		"updatedAt": review.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.MatchedCount == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// Delete removes a review of the given product.
func (r *reviewRepository) Delete(ctx context.Context, productID, id string) error {
	filter, ok := ownedReview(productID, id)
	if !ok {
		return model.ErrReviewNotFound
	}

	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.DeletedCount == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// RatingsByProduct returns the rating of every review of a product.
func (r *reviewRepository) RatingsByProduct(ctx context.Context, productID string) ([]float64, error) {
	pid, ok := objectID(productID)
	if !ok {
		return []float64{}, nil
	}

	opts := options.Find().
		SetProjection(bson.M{"rating": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"productId": pid}, opts)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query ratings")
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}

	var docs []struct {
		Rating float64 `bson:"rating"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	ratings := make([]float64, 0, len(docs))
	for _, doc := range docs {
		ratings = append(ratings, doc.Rating)
	}
	return ratings, nil
}

func ownedReview(productID, id string) (bson.M, bool) {
	pid, ok := objectID(productID)
	if !ok {
		return nil, false
	}
	oid, ok := objectID(id)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": oid, "productId": pid}, true
}
