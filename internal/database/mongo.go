package database

import (
	"context"
	"fmt"
	"regexp"

	"catalog-api/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var credentialsPattern = regexp.MustCompile(`//([^/@:]+):([^/@]+)@`)

// RedactURI masks the user name and password of a connection URI.
func RedactURI(uri string) string {
	return credentialsPattern.ReplaceAllString(uri, "//***:***@")
}

// NewMongoClient connects to MongoDB and verifies the connection.
func NewMongoClient(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*mongo.Client, error) {
	logger.Info().
		Str("uri", RedactURI(cfg.MongoURI)).
		Str("database", cfg.MongoDatabaseName()).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info().Msg("MongoDB connection established")

	return client, nil
}
