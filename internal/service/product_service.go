package service

import (
	"context"
	"fmt"
	"time"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns one page of products, newest first.
func (s *productService) List(ctx context.Context, page int, category string) (*model.ProductPage, error) {
	if page < 1 {
		page = 1
	}

	filter := model.ProductFilter{Category: category}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to count products")
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	pages := pageCount(total, model.ProductPageSize)
	if page > pages {
		// Past the end. Skipping the query also keeps huge pages from
		// overflowing the offset.
		return &model.ProductPage{
			Products:      []model.Product{},
			Page:          page,
			Pages:         pages,
			TotalProducts: total,
		}, nil
	}

	offset := (page - 1) * model.ProductPageSize
	products, err := s.productRepo.List(ctx, filter, model.ProductPageSize, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", page).
			Str("category", category).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("page", page).
		Int("total", total).
		Msg("retrieved products")

	return &model.ProductPage{
		Products:      products,
		Page:          page,
		Pages:         pages,
		TotalProducts: total,
	}, nil
}

// Search returns all products whose name contains query, ignoring case.
func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	if query == "" {
		return nil, model.ErrSearchQueryRequired
	}

	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// GetByID retrieves a product together with its reviews.
func (s *productService) GetByID(ctx context.Context, id string) (*model.ProductDetail, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product reviews")
		return nil, fmt.Errorf("failed to get product reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	return &model.ProductDetail{Product: *product, Reviews: reviews}, nil
}

// Create validates and stores a new product with no reviews.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Image:       req.Image,
		DateAdded:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("category", product.Category).
		Msg("product created successfully")

	return product, nil
}

func pageCount(total, size int) int {
	return (total + size - 1) / size
}
