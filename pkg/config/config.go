// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for the server, fetching, logging and rate limiting

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Fetch contains page retrieval configuration
	Fetch FetchConfig

	// Log contains logging configuration
	Log LogConfig

	// RateLimit contains inbound rate limiting configuration
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// MaxBatchURLs caps the URLs accepted by one batch request
	MaxBatchURLs int

	// BatchConcurrency caps the fetches a batch runs at once
	BatchConcurrency int
}

// FetchConfig holds page retrieval configuration
type FetchConfig struct {
	// Mode selects the fetcher (direct/relay/colly)
	Mode string

	// Timeout is the default per-request deadline
	Timeout time.Duration

	// RelayURL is the CORS relay used in relay mode
	RelayURL string

	// UserAgent overrides the User-Agent sent to target sites
	UserAgent string

	// MaxBodyBytes caps how much of a page is read
	MaxBodyBytes int64
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is the minimum level logged (debug/info/warn/error)
	Level string

	// Format is text or json
	Format string

	// File optionally sends logs to a rotating file
	File string
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	// Requests is the number of requests allowed per window per client; 0 disables limiting
	Requests int

	// Window is the rate limit window
	Window time.Duration
}

// Load reads an optional .env file, then the environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:             getEnvOrDefault("PORT", "8000"),
			MaxBatchURLs:     getEnvAsIntOrDefault("MAX_BATCH_URLS", 20),
			BatchConcurrency: getEnvAsIntOrDefault("BATCH_CONCURRENCY", 5),
		},
		Fetch: FetchConfig{
			Mode:         strings.ToLower(getEnvOrDefault("FETCH_MODE", "direct")),
			Timeout:      time.Duration(getEnvAsIntOrDefault("FETCH_TIMEOUT_MS", 5000)) * time.Millisecond,
			RelayURL:     getEnvOrDefault("RELAY_URL", "https://api.allorigins.win"),
			UserAgent:    getEnvOrDefault("USER_AGENT", ""),
			MaxBodyBytes: int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 5*1024*1024)),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT", 100),
			Window:   time.Duration(getEnvAsIntOrDefault("RATE_WINDOW_SECONDS", 60)) * time.Second,
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.MaxBatchURLs < 1 {
		return errors.New("max batch urls must be at least 1")
	}

	if c.Server.BatchConcurrency < 1 {
		return errors.New("batch concurrency must be at least 1")
	}

	switch c.Fetch.Mode {
	case "direct", "relay", "colly":
	default:
		return fmt.Errorf("fetch mode must be 'direct', 'relay' or 'colly', got %q", c.Fetch.Mode)
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.Fetch.Mode == "relay" && c.Fetch.RelayURL == "" {
		return errors.New("relay url cannot be empty when using relay mode")
	}

	if c.Fetch.MaxBodyBytes < 1 {
		return errors.New("max body bytes must be positive")
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	if c.RateLimit.Requests < 0 {
		return errors.New("rate limit cannot be negative")
	}

	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return errors.New("rate window must be positive when rate limiting is enabled")
	}

	return nil
}
