package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "dateAdded", Value: -1}, {Key: "_id", Value: 1}}

// productRepository implements the ProductRepository interface using MongoDB.
type productRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewProductRepository creates a new MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database, logger zerolog.Logger) repository.ProductRepository {
	return &productRepository{
		coll:   db.Collection(ProductsCollection),
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func productFilter(filter model.ProductFilter) bson.M {
	if filter.Category == "" {
		return bson.M{}
	}
	return bson.M{"category": filter.Category}
}

// List retrieves one page of products matching the filter, newest first.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, productFilter(filter), opts)
	if err != nil {
		r.logger.Error().Err(err).
			Str("category", filter.Category).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.decode(ctx, cursor)
}

// Count returns the number of products matching the filter.
func (r *productRepository) Count(ctx context.Context, filter model.ProductFilter) (int, error) {
	count, err := r.coll.CountDocuments(ctx, productFilter(filter))
	if err != nil {
		r.logger.Error().Err(err).Str("category", filter.Category).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return int(count), nil
}

// Search returns every product whose name contains query, ignoring case.
func (r *productRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return r.decode(ctx, cursor)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		r.logger.Debug().Str("product_id", id).Msg("malformed product id")
		return nil, nil
	}

	var doc productDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	p := doc.toModel()
	return &p, nil
}

// Create inserts a product and assigns its ID.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	doc := productDocument{
		ID:            primitive.NewObjectID(),
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Price:         product.Price,
		Image:         product.Image,
		DateAdded:     product.DateAdded,
		AverageRating: product.AverageRating,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	product.ID = doc.ID.Hex()
	return nil
}

// UpdateAverageRating overwrites the stored average rating.
func (r *productRepository) UpdateAverageRating(ctx context.Context, id string, averageRating float64) error {
	oid, ok := objectID(id)
	if !ok {
		return model.ErrProductNotFound
	}

	update := bson.M{"$set": bson.M{
		"averageRating": averageRating,
		"updatedAt":     time.Now().UTC(),
	}}

	result, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update average rating")
		return fmt.Errorf("failed to update average rating: %w", err)
	}

	if result.MatchedCount == 0 {
		r.logger.Warn().Str("product_id", id).Msg("average rating target product not found")
		return model.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) decode(ctx context.Context, cursor *mongo.Cursor) ([]model.Product, error) {
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode products")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toModel())
	}
	return products, nil
}
