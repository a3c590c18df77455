package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"barpulse/internal/config"
	"barpulse/internal/errors"
	"barpulse/internal/exporter"
	"barpulse/internal/infrastructure"
	customMiddleware "barpulse/internal/middleware"
	"barpulse/internal/services"
	handlers "barpulse/internal/transport/http"
)

const (
	Version = "1.0.0"
	AppName = "BarPulse - Beverage Program Inventory"
)

// BuildTime is set at compile time via -ldflags.
var BuildTime = "unknown"

// Application represents the main application container
type Application struct {
	Config *config.Config
	Paths  *config.Paths
	Router *chi.Mux
	Server *http.Server
	Logger *slog.Logger

	Metrics          *infrastructure.Metrics
	InventoryService *services.InventoryService
	HealthService    *services.HealthService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("build_time", BuildTime))

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	logger.Info("Resolved paths",
		slog.String("data_dir", paths.DataDir),
		slog.String("exports_dir", paths.ExportsDir),
		slog.String("logs_dir", paths.LogsDir))

	app := &Application{
		Config: cfg,
		Paths:  paths,
		Logger: logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.Metrics = infrastructure.NewMetrics()

	csvWriter := exporter.NewCSVWriter(a.Paths, a.Logger)
	a.InventoryService = services.NewInventoryService(csvWriter, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(Version, BuildTime, a.Paths, a.InventoryService, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware ordering: RequestID → RealIP → Logger → Recoverer → the rest
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.StripSlashes)
	r.Use(customMiddleware.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())

		inventoryHandler := handlers.NewInventoryHandler(a.InventoryService, a.Config.Upload, a.Logger, errorHandler)
		r.Mount("/inventory", inventoryHandler.Routes())
	})

	// Prometheus scrape endpoint stays outside the API middleware group.
	metricsHandler := handlers.NewMetricsHandler(a.Metrics)
	r.Handle("/metrics", metricsHandler.Handler())

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.ListenAddr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the server and blocks until shutdown completes.
// SIGINT and SIGTERM trigger a graceful shutdown bounded by the
// configured shutdown timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("Server listening",
			slog.String("address", a.Server.Addr),
			slog.Int("port", a.Config.Server.Port))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		a.Logger.Info("Server stopped")
		return nil
	})

	return g.Wait()
}
