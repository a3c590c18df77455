package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"barpulse/internal/config"
)

// HealthService reports process and dataset health.
type HealthService struct {
	version   string
	buildTime string
	paths     *config.Paths
	inventory *InventoryService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Uptime    string         `json:"uptime"`
	Runtime   map[string]any `json:"runtime,omitempty"`
	Datasets  map[string]int `json:"datasets"`
}

// NewHealthService creates a new health service.
func NewHealthService(version, buildTime string, paths *config.Paths, inventory *InventoryService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		inventory: inventory,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// Health returns the current health snapshot. The service is healthy
// whenever the process is up; loaded dataset counts are informational.
func (s *HealthService) Health(ctx context.Context) HealthStatus {
	datasets := make(map[string]int)
	for category, rows := range s.inventory.Loaded() {
		datasets[string(category)] = rows
	}

	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]any{
			"go_version": runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
			"goroutines": runtime.NumGoroutine(),
		},
		Datasets: datasets,
	}
}
