// ABOUTME: Main entry point for the LinkMeta API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkmeta-api/api"
	"linkmeta-api/api/handlers"
	"linkmeta-api/api/middleware"
	"linkmeta-api/core/domain"
	"linkmeta-api/core/interfaces"
	"linkmeta-api/core/services"
	"linkmeta-api/infrastructure/fetcher"
	stdhttp "linkmeta-api/infrastructure/http/standard"
	"linkmeta-api/infrastructure/logger/structured"
	"linkmeta-api/pkg/config"
)

func main() {
	printBanner()

	// Load configuration; a missing .env file is not an error
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := structured.NewLogger(structured.Options{
		Level:      cfg.Log.Level,
		Format:     structured.Format(cfg.Log.Format),
		File:       cfg.Log.File,
		MaxSizeMB:  500,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Starting LinkMeta API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"fetch_mode": cfg.Fetch.Mode,
		"timeout_ms": cfg.Fetch.Timeout.Milliseconds(),
		"rate_limit": cfg.RateLimit.Requests,
	})

	// Outgoing requests are logged at debug level
	transport := &middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger}

	// Each fetch is bounded by its own context deadline, so the client has no timeout
	httpClient := stdhttp.NewStandardHTTPClient(
		0,
		stdhttp.WithUserAgent(cfg.Fetch.UserAgent),
		stdhttp.WithTransport(transport),
	)

	pageFetcher, err := fetcher.New(fetcher.Config{
		Mode:         fetcher.Mode(cfg.Fetch.Mode),
		RelayURL:     cfg.Fetch.RelayURL,
		UserAgent:    cfg.Fetch.UserAgent,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
		Transport:    transport,
	}, httpClient, logger)
	if err != nil {
		log.Fatalf("Failed to create fetcher: %v", err)
	}

	deps := interfaces.Dependencies{
		Fetcher: pageFetcher,
		Logger:  logger,
	}

	metadataService := services.NewMetadataService(deps,
		services.WithDefaultTimeout(cfg.Fetch.Timeout),
		services.WithBatchConcurrency(cfg.Server.BatchConcurrency),
	)

	srv := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.RateLimit.Requests,
		RateWindow: cfg.RateLimit.Window,
		Compress:   true,
	})
	defer srv.Close()

	handlers.NewMetadataHandler(metadataService, cfg.Server.MaxBatchURLs).RegisterRoutes(srv.API)
	handlers.RegisterHealth(srv.API)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": httpServer.Addr,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// writeTimeout leaves room for the slowest batch: every round of concurrent
// fetches may run up to domain.MaxTimeout.
func writeTimeout(cfg *config.Config) time.Duration {
	concurrency := cfg.Server.BatchConcurrency
	if concurrency <= 0 {
		concurrency = services.DefaultBatchConcurrency
	}
	rounds := (cfg.Server.MaxBatchURLs + concurrency - 1) / concurrency
	if rounds < 1 {
		rounds = 1
	}
	return time.Duration(rounds)*domain.MaxTimeout + 15*time.Second
}

func printBanner() {
	fmt.Println(`
    __    _       __   __  ___     __
   / /   (_)___  / /__/  |/  /__  / /_____ _
  / /   / / __ \/ //_/ /|_/ / _ \/ __/ __ '/
 / /___/ / / / / ,< / /  / /  __/ /_/ /_/ /
/_____/_/_/ /_/_/|_/_/  /_/\___/\__/\__,_/
	`)
}
