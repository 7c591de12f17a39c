// Package router wires handlers and middleware into the HTTP routing tree.
package router

import (
	"net/http"

	"catalog-api/internal/docs"
	"catalog-api/internal/handler"
	"catalog-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options holds the request-independent settings of the router.
type Options struct {
	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string
	// Production hides error details in 500 responses.
	Production bool
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	reviewHandler *handler.ReviewHandler,
	healthHandler *handler.HealthHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Request id -> Logging -> Metrics -> Recovery -> CORS
	// Recovery sits inside Logging and Metrics so recovered panics are
	// logged and counted as 500s.
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery(opts.Production, logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	r.Get("/health", healthHandler.Liveness)
	r.Get("/ready", healthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/api-docs", docs.SwaggerUI)
	r.Get("/api-docs/openapi.json", docs.OpenAPI)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/search", productHandler.Search)

		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", productHandler.GetByID)

			r.Get("/reviews", reviewHandler.List)
			r.Post("/reviews", reviewHandler.Create)
			r.Put("/reviews/{id}", reviewHandler.Update)
			r.Delete("/reviews/{id}", reviewHandler.Delete)
		})
	})

	return r
}
