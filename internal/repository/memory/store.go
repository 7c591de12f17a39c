// Package memory provides map-backed repositories for development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

// Store holds products and reviews in memory. The zero value is not usable;
// call NewStore.
type Store struct {
	mu       sync.RWMutex
	products map[string]model.Product
	reviews  map[string]model.Review
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		products: make(map[string]model.Product),
		reviews:  make(map[string]model.Review),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Products returns a ProductRepository over the store.
func (s *Store) Products() repository.ProductRepository {
	return &productRepository{store: s}
}

// Reviews returns a ReviewRepository over the store.
func (s *Store) Reviews() repository.ReviewRepository {
	return &reviewRepository{store: s}
}

type productRepository struct {
	store *Store
}

func (r *productRepository) matching(pred func(model.Product) bool) []model.Product {
	out := []model.Product{}
	for _, p := range r.store.products {
		if pred(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateAdded.Equal(out[j].DateAdded) {
			return out[i].DateAdded.After(out[j].DateAdded)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func byCategory(filter model.ProductFilter) func(model.Product) bool {
	return func(p model.Product) bool {
		return filter.Category == "" || p.Category == filter.Category
	}
}

func (r *productRepository) List(_ context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := r.matching(byCategory(filter))
	if offset >= len(all) {
		return []model.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *productRepository) Count(_ context.Context, filter model.ProductFilter) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.matching(byCategory(filter))), nil
}

func (r *productRepository) Search(_ context.Context, query string) ([]model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(query)
	return r.matching(func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

func (r *productRepository) GetByID(_ context.Context, id string) (*model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepository) Create(_ context.Context, product *model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product.ID = uuid.NewString()
	r.store.products[product.ID] = *product
	return nil
}

func (r *productRepository) UpdateAverageRating(_ context.Context, id string, averageRating float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return model.ErrProductNotFound
	}
	p.AverageRating = averageRating
	p.UpdatedAt = time.Now().UTC()
	r.store.products[id] = p
	return nil
}

type reviewRepository struct {
	store *Store
}

func (r *reviewRepository) ListByProduct(_ context.Context, productID string) ([]model.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := r.byProduct(productID)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *reviewRepository) GetForProduct(_ context.Context, productID, id string) (*model.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rv, ok := r.store.reviews[id]
	if !ok || rv.ProductID != productID {
		return nil, nil
	}
	return &rv, nil
}

func (r *reviewRepository) Create(_ context.Context, review *model.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[review.ProductID]; !ok {
		return model.ErrProductNotFound
	}
	review.ID = uuid.NewString()
	r.store.reviews[review.ID] = *review
	return nil
}

func (r *reviewRepository) Update(_ context.Context, review *model.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.reviews[review.ID]
	if !ok || stored.ProductID != review.ProductID {
		return model.ErrReviewNotFound
	}
	stored.Author = review.Author
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	stored.UpdatedAt = review.UpdatedAt
	r.store.reviews[review.ID] = stored
	return nil
}

func (r *reviewRepository) Delete(_ context.Context, productID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.reviews[id]
	if !ok || stored.ProductID != productID {
		return model.ErrReviewNotFound
	}
	delete(r.store.reviews, id)
	return nil
}

func (r *reviewRepository) RatingsByProduct(_ context.Context, productID string) ([]float64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reviews := r.byProduct(productID)
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
	})
	ratings := make([]float64, 0, len(reviews))
	for _, rv := range reviews {
		ratings = append(ratings, rv.Rating)
	}
	return ratings, nil
}

// byProduct must be called with the lock held.
func (r *reviewRepository) byProduct(productID string) []model.Review {
	out := []model.Review{}
	for _, rv := range r.store.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out
}
