package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. All counters are
// labeled by inventory category.
type Metrics struct {
	Registry *prometheus.Registry

	ImportsTotal       *prometheus.CounterVec
	ImportFailures     *prometheus.CounterVec
	ImportedRows       *prometheus.CounterVec
	RecalculationsTotal *prometheus.CounterVec
	ExportsTotal       *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry so tests can
// construct independent instances.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		ImportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "barpulse_imports_total",
			Help: "Completed inventory imports by category.",
		}, []string{"category"}),
		ImportFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "barpulse_import_failures_total",
			Help: "Rejected inventory imports by category.",
		}, []string{"category"}),
		ImportedRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "barpulse_imported_rows_total",
			Help: "Rows ingested across all imports by category.",
		}, []string{"category"}),
		RecalculationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "barpulse_recalculations_total",
			Help: "Recalculation runs by category.",
		}, []string{"category"}),
		ExportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "barpulse_exports_total",
			Help: "CSV exports by category.",
		}, []string{"category"}),
	}
}
