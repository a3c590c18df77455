package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"barpulse/internal/infrastructure"
)

// MetricsHandler exposes the Prometheus registry.
type MetricsHandler struct {
	metrics *infrastructure.Metrics
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(metrics *infrastructure.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Handler returns the Prometheus scrape endpoint for GET /metrics.
func (h *MetricsHandler) Handler() http.Handler {
	return promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})
}
