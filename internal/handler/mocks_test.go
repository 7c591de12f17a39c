package handler

import (
	"context"
	"net/http"

	"catalog-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, page int, category string) (*model.ProductPage, error) {
	args := m.Called(ctx, page, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductPage), args.Error(1)
}

func (m *MockProductService) Search(ctx context.Context, query string) ([]model.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductDetail), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockReviewService is a mock implementation of ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, productID string) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, productID string, req *model.CreateReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, productID, id string, req *model.UpdateReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, productID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, productID, id string) error {
	args := m.Called(ctx, productID, id)
	return args.Error(0)
}

// productRoutes mounts the product and review handlers the way the router does.
func productRoutes(products *ProductHandler, reviews *ReviewHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/products", func(r chi.Router) {
		if products != nil {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/search", products.Search)
			r.Get("/{productId}", products.GetByID)
		}
		if reviews != nil {
			r.Get("/{productId}/reviews", reviews.List)
			r.Post("/{productId}/reviews", reviews.Create)
			r.Put("/{productId}/reviews/{id}", reviews.Update)
			r.Delete("/{productId}/reviews/{id}", reviews.Delete)
		}
	})
	return r
}
