// ABOUTME: Entry point for the migration assessor HTTP service
// ABOUTME: Serves the trigger router over HTTP with metrics and middleware

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/migration-assessor/config"
	"github.com/markalston/migration-assessor/events"
	"github.com/markalston/migration-assessor/handlers"
	"github.com/markalston/migration-assessor/logger"
	"github.com/markalston/migration-assessor/metrics"
	"github.com/markalston/migration-assessor/middleware"
	"github.com/markalston/migration-assessor/services"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Migration Assessor")
	slog.Info("Backends configured",
		"store", cfg.StoreBackend,
		"objects", cfg.ObjectBackend,
		"table", cfg.TableName,
		"region", cfg.AWSRegion,
		"lookup_cache_ttl", cfg.LookupCacheTTL,
	)
	if cfg.AWSEndpoint != "" {
		slog.Info("AWS endpoint override", "endpoint", cfg.AWSEndpoint)
	}

	backends, err := services.NewBackends(cfg)
	if err != nil {
		slog.Error("Failed to initialize backends", "error", err)
		os.Exit(1)
	}
	defer backends.Close()

	m := metrics.New()
	processor := services.NewProcessor(backends.Store, m)
	router := events.NewRouter(processor, backends.Store, backends.Objects, m)
	h := handlers.NewHandler(cfg, router)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		slog.Info("Rate limiting enabled", "requests_per_minute", cfg.RateLimitDefault)
	}

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Pattern(), middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Recover,
			middleware.CORS(cfg.CORSAllowedOrigins),
			middleware.RateLimit(limiter, middleware.ClientIP),
		))
	}
	mux.Handle("GET /metrics", m.HTTPHandler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
