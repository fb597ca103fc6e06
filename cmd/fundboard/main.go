package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fundboard/internal/api"
	"fundboard/internal/config"
	apphttp "fundboard/internal/http"
	"fundboard/internal/log"
	"fundboard/internal/metrics"
	"fundboard/internal/session"
)

func main() {
	// Optional .env for local development; the environment wins.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err.Error())
		os.Exit(1)
	}

	sessions, err := session.NewStore(cfg.SessionDBPath, cfg.SessionTTL, logger.WithComponent(log.ComponentSession))
	if err != nil {
		logger.Error("Failed to open session store", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Error("Session store close error", log.FieldError, err.Error())
		}
	}()

	collector := metrics.NewCollector()
	apiClient := api.New(cfg.APIBaseURL, cfg.APITimeout, logger.WithComponent(log.ComponentAPI), collector)

	srv := apphttp.NewServer(cfg, apiClient, sessions, collector, logger.WithComponent(log.ComponentHTTP))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Expired sessions are rejected lazily on lookup; this sweep just
	// keeps the table from growing.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := sessions.PurgeExpired(ctx); err != nil {
					logger.Warn("Session purge failed", log.FieldError, err.Error())
				} else if n > 0 {
					logger.Info("Purged expired sessions", "purged", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		cancel()
	}()

	logger.Info("Starting fundboard",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"api_base_url", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
