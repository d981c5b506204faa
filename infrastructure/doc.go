// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - fetcher/direct: Plain GET against the target site
// - fetcher/relay: Fetch through a CORS relay that wraps the page in JSON
// - fetcher/collyfetch: Fetch with a colly collector
// - http/standard: net/http client adding user agent and request headers
// - logger/structured: logrus logger with optional lumberjack file rotation
//
// # Fetchers
//
//	f, err := fetcher.New(fetcher.Config{Mode: fetcher.ModeRelay}, client, logger)
//	page, err := f.Fetch(ctx, "https://example.com", domain.FetchOptions{})
//
// # Logger
//
//	logger, err := structured.NewLogger(structured.Options{Level: "debug", Format: structured.FormatJSON})
//	logger.Info("Fetched page", map[string]interface{}{
//	    "url":   "https://example.com",
//	    "bytes": 5120,
//	})
package infrastructure
