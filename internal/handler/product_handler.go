package handler

import (
	"net/http"
	"strconv"

	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	errors  errorWriter
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler. production hides error
// details from 500 responses.
func NewProductHandler(service service.ProductService, production bool, logger zerolog.Logger) *ProductHandler {
	logger = logger.With().Str("handler", "product").Logger()
	return &ProductHandler{
		service: service,
		errors:  errorWriter{production: production, logger: logger},
		logger:  logger,
	}
}

// List handles GET /api/products?page=&category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.service.List(r.Context(), page, query.Get("category"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Search handles GET /api/products/search?q=.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{productId}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.write(w, r, err)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	h.logger.Info().Str("product_id", product.ID).Msg("product created")
	writeJSON(w, http.StatusCreated, product)
}
