package router

import (
	"net/http"

	"stockwatch/internal/handler"
	"stockwatch/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Metrics are served from gatherer at /metrics. A nil orderHandler leaves the
// order routes unregistered.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	gatherer prometheus.Gatherer,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check and metrics need no authentication.
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Register both with and without trailing slash.
	mux.Handle("/api/products", productHandler)
	mux.Handle("/api/products/", productHandler)
	if orderHandler != nil {
		mux.Handle("/api/orders", orderHandler)
		mux.Handle("/api/orders/", orderHandler)
	}

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
