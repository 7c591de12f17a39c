package handler

import (
	"net/http"

	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReviewHandler handles the review routes nested under a product.
type ReviewHandler struct {
	service service.ReviewService
	errors  errorWriter
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, production bool, logger zerolog.Logger) *ReviewHandler {
	logger = logger.With().Str("handler", "review").Logger()
	return &ReviewHandler{
		service: service,
		errors:  errorWriter{production: production, logger: logger},
		logger:  logger,
	}
}

// List handles GET /api/products/{productId}/reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// Create handles POST /api/products/{productId}/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.write(w, r, err)
		return
	}

	review, err := h.service.Create(r.Context(), chi.URLParam(r, "productId"), &req)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// Update handles PUT /api/products/{productId}/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.write(w, r, err)
		return
	}

	review, err := h.service.Update(r.Context(), chi.URLParam(r, "productId"), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /api/products/{productId}/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "productId"), chi.URLParam(r, "id")); err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Review removed")
}
