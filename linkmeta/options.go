// ABOUTME: Configuration options for the LinkMeta library client
// ABOUTME: Provides functional options for the client and for individual extractions

package linkmeta

import (
	"time"

	"linkmeta-api/core/interfaces"
	"linkmeta-api/infrastructure/fetcher"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithHTTPClient sets a custom HTTP client used by the direct and relay fetchers
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithFetcher replaces the page fetcher entirely
func WithFetcher(f interfaces.Fetcher) Option {
	return func(c *Config) error {
		c.Fetcher = f
		return nil
	}
}

// WithFetchMode selects the built-in fetcher: "direct", "relay" or "colly"
func WithFetchMode(mode string) Option {
	return func(c *Config) error {
		m, err := fetcher.ParseMode(mode)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "invalid fetch mode").
				WithCause(err).
				WithContext("mode", mode)
		}
		c.FetchMode = m
		return nil
	}
}

// WithRelayURL sets the CORS relay used in relay mode
func WithRelayURL(relayURL string) Option {
	return func(c *Config) error {
		c.RelayURL = relayURL
		return nil
	}
}

// WithUserAgent sets the User-Agent sent to target sites
func WithUserAgent(ua string) Option {
	return func(c *Config) error {
		c.UserAgent = ua
		return nil
	}
}

// WithMaxBodyBytes caps how much of a page is read
func WithMaxBodyBytes(n int64) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewError(ErrorTypeConfiguration, "max body bytes must be positive")
		}
		c.MaxBodyBytes = n
		return nil
	}
}

// WithDefaultTimeout sets the timeout used when an extraction does not set one
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return NewError(ErrorTypeConfiguration, "default timeout must be positive")
		}
		c.DefaultTimeout = d
		return nil
	}
}

// WithBatchConcurrency sets how many batch URLs are fetched at once
func WithBatchConcurrency(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewError(ErrorTypeConfiguration, "batch concurrency must be positive")
		}
		c.BatchConcurrency = n
		return nil
	}
}

// ExtractOption is a functional option for a single extraction
type ExtractOption func(*ExtractOptions)

// WithAllMeta collects unrecognized meta tags and link elements under other
func WithAllMeta() ExtractOption {
	return func(o *ExtractOptions) {
		o.IncludeAllMeta = true
	}
}

// WithHTML attaches the raw page HTML to the result
func WithHTML() ExtractOption {
	return func(o *ExtractOptions) {
		o.IncludeHTML = true
	}
}

// WithResponseHeaders attaches content-type, content-length and last-modified
func WithResponseHeaders() ExtractOption {
	return func(o *ExtractOptions) {
		o.IncludeResponseHeaders = true
	}
}

// WithTimeout bounds the fetch
func WithTimeout(d time.Duration) ExtractOption {
	return func(o *ExtractOptions) {
		o.Timeout = d
	}
}

// WithHeaders adds request headers sent to the target site
func WithHeaders(headers map[string]string) ExtractOption {
	return func(o *ExtractOptions) {
		if o.FetchOptions.Headers == nil {
			o.FetchOptions.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.FetchOptions.Headers[k] = v
		}
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		FetchMode:        fetcher.ModeDirect,
		DefaultTimeout:   5 * time.Second,
		BatchConcurrency: 5,
	}
}

func buildExtractOptions(opts []ExtractOption) ExtractOptions {
	var o ExtractOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
