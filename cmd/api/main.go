// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/avasquez/stitchstock-be/internal/adapters/filestore"
	"github.com/avasquez/stitchstock-be/internal/adapters/pgstore"
	"github.com/avasquez/stitchstock-be/internal/adapters/qrgen"
	"github.com/avasquez/stitchstock-be/internal/adapters/redisstore"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/internal/core/services"
	"github.com/avasquez/stitchstock-be/internal/handlers"
	"github.com/avasquez/stitchstock-be/internal/handlers/middleware"
	"github.com/avasquez/stitchstock-be/internal/pkg/config"
	"github.com/avasquez/stitchstock-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.Setup("debug", "json")

	slogger.Info("starting stitchstock inventory tracker",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.Setup(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("store_backend", cfg.Store.Backend),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	store            ports.BlobStore
	redisClient      *redis.Client
	pgStore          *pgstore.Store
	ledger           *services.Ledger
	inventoryHandler *handlers.InventoryHandler
	scanHandler      *handlers.ScanHandler
	analyticsHandler *handlers.AnalyticsHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.pgStore != nil {
		d.pgStore.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	store, err := buildStore(ctx, cfg, slogger, deps)
	if err != nil {
		return nil, err
	}
	deps.store = store

	ledger, err := services.NewLedger(ctx, store, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger: %w", err)
	}
	deps.ledger = ledger

	location, err := cfg.AnalyticsLocation()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve analytics timezone: %w", err)
	}

	deps.inventoryHandler = handlers.NewInventoryHandler(ledger, qrgen.New(), cfg.Analytics.LowStockThreshold, slogger)
	deps.scanHandler = handlers.NewScanHandler(ledger, cfg.Scanner.QueueSize, cfg.Security.AllowedOrigins, slogger)
	deps.analyticsHandler = handlers.NewAnalyticsHandler(ledger, location, cfg.Analytics.LowStockThreshold, cfg.Analytics.TopSellersLimit, slogger)
	deps.exportHandler = handlers.NewExportHandler(ledger, cfg.Analytics.LowStockThreshold, slogger)
	deps.healthHandler = handlers.NewHealthHandler(store, cfg, slogger)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func buildStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger, deps *dependencies) (ports.BlobStore, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		slogger.Info("connecting to Redis",
			slog.String("host", cfg.Redis.Host),
			slog.String("port", cfg.Redis.Port))

		client := redis.NewClient(&redis.Options{
			Addr:            cfg.GetRedisAddr(),
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			MaxRetries:      cfg.Redis.MaxRetries,
			MinRetryBackoff: cfg.Redis.MinRetryBackoff,
			MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
			DialTimeout:     cfg.Redis.DialTimeout,
			ReadTimeout:     cfg.Redis.ReadTimeout,
			WriteTimeout:    cfg.Redis.WriteTimeout,
			PoolSize:        cfg.Redis.PoolSize,
			MinIdleConns:    cfg.Redis.MinIdleConns,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		deps.redisClient = client
		return redisstore.New(client, cfg.Store.KeyPrefix, slogger), nil

	case config.BackendPostgres:
		slogger.Info("connecting to database",
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Name))

		connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()

		store, err := pgstore.Open(connectCtx, cfg.GetDatabaseURL(), slogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		deps.pgStore = store
		return store, nil

	case config.BackendFile:
		slogger.Info("opening file store", slog.String("path", cfg.Store.FilePath))

		store, err := filestore.New(cfg.Store.FilePath, slogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	var handler http.Handler = mux

	// Apply middleware in reverse order (innermost first)
	if cfg.App.Environment != "test" {
		handler = middleware.RequestID(handler)
		handler = middleware.Logger(slogger)(handler)
		handler = middleware.Recovery(slogger)(handler)
	}

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	registerRoutes(mux, deps, cfg)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	}

	// Inventory endpoints
	mux.HandleFunc("POST "+apiV1+"/stock", deps.inventoryHandler.AddStock)
	mux.HandleFunc("GET "+apiV1+"/inventory", deps.inventoryHandler.ListInventory)
	mux.HandleFunc("GET "+apiV1+"/inventory/{sku}/qr", deps.inventoryHandler.RenderQR)

	// Scan endpoints
	mux.HandleFunc("POST "+apiV1+"/scan", deps.scanHandler.Scan)
	mux.HandleFunc("GET "+apiV1+"/scan/stream", deps.scanHandler.Stream)

	// Analytics endpoints
	mux.HandleFunc("GET "+apiV1+"/analytics/dashboard", deps.analyticsHandler.Dashboard)

	// Export endpoints
	mux.HandleFunc("GET "+apiV1+"/export/excel", deps.exportHandler.ExportExcel)
	mux.HandleFunc("GET "+apiV1+"/export/json", deps.exportHandler.ExportJSON)
}
