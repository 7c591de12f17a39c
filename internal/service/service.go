package service

import (
	"context"

	"catalog-api/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// List returns one page of products, newest first, optionally limited to
	// a category. Pages below 1 are treated as page 1.
	List(ctx context.Context, page int, category string) (*model.ProductPage, error)

	// Search returns all products whose name contains query, ignoring case.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// GetByID retrieves a product together with its reviews.
	GetByID(ctx context.Context, id string) (*model.ProductDetail, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
}

// ReviewService defines operations on the reviews of a product. Every
// successful mutation recomputes the product's average rating.
type ReviewService interface {
	// List returns the reviews of a product, most recent first.
	List(ctx context.Context, productID string) ([]model.Review, error)

	// Create adds a review to a product.
	Create(ctx context.Context, productID string, req *model.CreateReviewRequest) (*model.Review, error)

	// Update overwrites the supplied fields of a review of the product.
	Update(ctx context.Context, productID, id string, req *model.UpdateReviewRequest) (*model.Review, error)

	// Delete removes a review of the product.
	Delete(ctx context.Context, productID, id string) error
}

// RatingAggregator keeps a product's averageRating in line with its reviews.
type RatingAggregator interface {
	// Recompute reads every rating of the product and stores the rounded
	// mean, or 0 when there are none. It returns the stored value.
	Recompute(ctx context.Context, productID string) (float64, error)
}
