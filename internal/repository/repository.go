package repository

import (
	"context"

	"catalog-api/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves one page of products matching the filter, newest first.
	List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error)

	// Count returns the number of products matching the filter.
	Count(ctx context.Context, filter model.ProductFilter) (int, error)

	// Search returns every product whose name contains query, ignoring case,
	// newest first. The query is matched literally.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil without an error when the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a product and assigns its ID.
	Create(ctx context.Context, product *model.Product) error

	// UpdateAverageRating overwrites the stored average rating.
	// Returns model.ErrProductNotFound when no product has the given ID.
	UpdateAverageRating(ctx context.Context, id string, averageRating float64) error
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// ListByProduct returns all reviews of a product, most recent first.
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)

	// GetForProduct retrieves a review that belongs to the given product.
	// Returns nil without an error when the review does not exist or
	// belongs to another product.
	GetForProduct(ctx context.Context, productID, id string) (*model.Review, error)

	// Create inserts a review and assigns its ID.
	Create(ctx context.Context, review *model.Review) error

	// Update persists the author, rating and comment of an existing review.
	// Returns model.ErrReviewNotFound when nothing was updated.
	Update(ctx context.Context, review *model.Review) error

	// Delete removes a review of the given product.
	// Returns model.ErrReviewNotFound when nothing was deleted.
	Delete(ctx context.Context, productID, id string) error

	// RatingsByProduct returns the rating of every review of a product.
	RatingsByProduct(ctx context.Context, productID string) ([]float64, error)
}
