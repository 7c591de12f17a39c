package mongodb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes used by catalog queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger zerolog.Logger) error {
	products := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "dateAdded", Value: -1}}},
	}
	if _, err := db.Collection(ProductsCollection).Indexes().CreateMany(ctx, products); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	reviews := []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "date", Value: -1}}},
	}
	if _, err := db.Collection(ReviewsCollection).Indexes().CreateMany(ctx, reviews); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}

	logger.Info().Msg("MongoDB indexes are in place")
	return nil
}
