package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-api/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectMetric extracts the metric matching labels from a collector.
func collectMetric(t *testing.T, c prometheus.Collector, labels map[string]string) *dto.Metric {
	t.Helper()

	ch := make(chan prometheus.Metric, 100)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		d := &dto.Metric{}
		if err := m.Write(d); err != nil {
			continue
		}

		match := true
		for k, v := range labels {
			found := false
			for _, lp := range d.GetLabel() {
				if lp.GetName() == k && lp.GetValue() == v {
					found = true
					break
				}
			}
			if !found {
				match = false
				break
			}
		}
		if match {
			return d
		}
	}
	return nil
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logging(logger))
	r.Get("/api/products/{productId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["message"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/products/abc", entry["path"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestLogging_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := Logging(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		panicValue any
		expectBody string
	}{
		{
			name:       "Production",
			production: true,
			panicValue: "boom",
			expectBody: "Internal Server Error",
		},
		{
			name:       "Development string panic",
			production: false,
			panicValue: "boom",
			expectBody: "boom",
		},
		{
			name:       "Development error panic",
			production: false,
			panicValue: errors.New("nil map write"),
			expectBody: "nil map write",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recovery(tt.production, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicValue)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectBody, body["message"])
			if tt.production {
				assert.NotContains(t, body, "stack")
			} else {
				assert.NotEmpty(t, body["stack"])
			}
		})
	}
}

func TestRecovery_NoPanic(t *testing.T) {
	handler := Recovery(true, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/products", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRecovery_LoggedAndCounted(t *testing.T) {
	var buf bytes.Buffer

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logging(zerolog.New(&buf)))
	r.Use(Metrics)
	r.Use(Recovery(true, zerolog.Nop()))
	r.Get("/api/products/{productId}/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/abc/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["message"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), entry["status"])

	m := collectMetric(t, metrics.HTTPRequestsTotal, map[string]string{
		"method": "GET",
		"path":   "/api/products/{productId}/panic",
		"status": "500",
	})
	require.NotNil(t, m)
	assert.Equal(t, float64(1), m.GetCounter().GetValue())
}

func TestMetrics_RoutePatternLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/products/{productId}/reviews", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/"+id+"/reviews", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	m := collectMetric(t, metrics.HTTPRequestsTotal, map[string]string{
		"method": "GET",
		"path":   "/api/products/{productId}/reviews",
		"status": "200",
	})
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(3))
}

func TestMetrics_WithoutRouteContext(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))

	m := collectMetric(t, metrics.HTTPRequestsTotal, map[string]string{
		"method": "GET",
		"path":   "unknown",
		"status": "418",
	})
	require.NotNil(t, m)
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://shop.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		origin       string
		expectOrigin string
	}{
		{name: "Allowed origin", origin: "https://shop.example.com", expectOrigin: "https://shop.example.com"},
		{name: "Other origin", origin: "https://evil.example.com", expectOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectOrigin != "" {
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}
