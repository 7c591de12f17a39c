// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	RatingRecomputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rating_recomputations_total",
			Help: "Number of product average ratings recomputed and stored",
		},
	)

	RatingEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rating_events_published_total",
			Help: "Rating-updated events handed to the broker, by result",
		},
		[]string{"result"},
	)

	SeededProducts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_seeded_products_total",
			Help: "Products created from the catalog seed file",
		},
	)
)
