package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartsched/leadbridge/internal/api/router"
	"github.com/smartsched/leadbridge/internal/clients"
	appconfig "github.com/smartsched/leadbridge/internal/config"
	"github.com/smartsched/leadbridge/internal/observability/metrics"
	"github.com/smartsched/leadbridge/internal/redirect"
	"github.com/smartsched/leadbridge/internal/resolver"
	"github.com/smartsched/leadbridge/internal/smartlead"
	"github.com/smartsched/leadbridge/pkg/logging"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadbridge API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"domain", cfg.Domain,
	)

	// Client directory: Postgres when configured, in-memory otherwise
	var directory clients.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		directory = clients.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory client directory")
		directory = clients.NewInMemoryRepository()
	}

	// SmartLead provider client
	provider := smartlead.NewClient(cfg.SmartLeadBaseURL,
		smartlead.WithTimeout(cfg.SmartLeadTimeout),
		smartlead.WithLogger(logger),
	)

	redirectMetrics := metrics.NewRedirectMetrics(nil)

	// Initialize handlers
	res := resolver.New(directory, cfg.Domain, logger)
	redirectHandler := redirect.NewHandler(res, provider, redirectMetrics, logger, cfg.LegacyUndefinedFields)
	clientsHandler := clients.NewHandler(directory, provider, redirectMetrics, logger, cfg.StrictMutations)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		ClientsHandler:     clientsHandler,
		RedirectHandler:    redirectHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
