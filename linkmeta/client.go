// ABOUTME: Main client for the LinkMeta library providing page metadata extraction
// ABOUTME: Offers the core functionality without HTTP server dependencies

package linkmeta

import (
	"context"
	"sync/atomic"
	"time"

	"linkmeta-api/core/domain"
	"linkmeta-api/core/extractor"
	"linkmeta-api/core/interfaces"
	"linkmeta-api/core/services"
	"linkmeta-api/infrastructure/fetcher"
	httpInfra "linkmeta-api/infrastructure/http/standard"
)

// Client is the main entry point for the LinkMeta library
type Client struct {
	service *services.MetadataService
	config  Config
	closed  atomic.Bool
}

// Config holds the configuration for the client
type Config struct {
	// HTTPClient is used by the direct and relay fetchers
	HTTPClient interfaces.HTTPClient

	// Logger receives debug and warning output; nil keeps the client quiet
	Logger interfaces.Logger

	// Fetcher, when set, replaces the built-in fetcher
	Fetcher interfaces.Fetcher

	// FetchMode selects the built-in fetcher
	FetchMode fetcher.Mode

	// RelayURL is the CORS relay used in relay mode
	RelayURL string

	// UserAgent is sent to target sites
	UserAgent string

	// MaxBodyBytes caps how much of a page is read
	MaxBodyBytes int64

	// DefaultTimeout applies when an extraction sets no timeout
	DefaultTimeout time.Duration

	// BatchConcurrency caps concurrent fetches in a batch
	BatchConcurrency int
}

// NewClient creates a new LinkMeta client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if config.Logger == nil {
		config.Logger = QuietLogger()
	}

	if config.HTTPClient == nil {
		// No client-wide timeout; each call is bounded by its own deadline
		config.HTTPClient = httpInfra.NewStandardHTTPClient(
			0,
			httpInfra.WithUserAgent(config.UserAgent),
		)
	}

	pageFetcher := config.Fetcher
	if pageFetcher == nil {
		f, err := fetcher.New(fetcher.Config{
			Mode:         config.FetchMode,
			RelayURL:     config.RelayURL,
			UserAgent:    config.UserAgent,
			MaxBodyBytes: config.MaxBodyBytes,
		}, config.HTTPClient, config.Logger)
		if err != nil {
			return nil, NewError(ErrorTypeConfiguration, "failed to create fetcher").WithCause(err)
		}
		pageFetcher = f
	}

	deps := interfaces.Dependencies{
		Fetcher: pageFetcher,
		Logger:  config.Logger,
	}

	return &Client{
		service: services.NewMetadataService(deps,
			services.WithDefaultTimeout(config.DefaultTimeout),
			services.WithBatchConcurrency(config.BatchConcurrency),
		),
		config: config,
	}, nil
}

// Close marks the client closed. Later calls fail with ErrClientClosed.
func (c *Client) Close() error {
	c.closed.Store(true)
	return nil
}

// FetchAndExtract fetches url and returns its metadata. Failures carry the
// "Failed to fetch metadata:" prefix and the requested URL.
func (c *Client) FetchAndExtract(ctx context.Context, url string, opts ...ExtractOption) (*Result, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.service.FetchAndExtract(ctx, url, buildExtractOptions(opts))
}

// FetchAndExtractBatch extracts metadata for several URLs, one item per URL in input order
func (c *Client) FetchAndExtractBatch(ctx context.Context, urls []string, opts ...ExtractOption) ([]BatchItem, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.service.FetchAndExtractBatch(ctx, urls, buildExtractOptions(opts)), nil
}

// Extract runs extraction on markup the caller already has. baseURL resolves
// a relative favicon. Only WithAllMeta and WithHTML have an effect.
func Extract(html, baseURL string, opts ...ExtractOption) *Result {
	o := buildExtractOptions(opts)
	result := extractor.Extract(domain.Document{HTML: html, BaseURL: baseURL}, o)
	if o.IncludeHTML {
		result.HTML = &html
	}
	return result
}

// CamelKey converts a raw og/twitter suffix such as "image:secure_url" into
// the key used in results ("imageSecureUrl")
func CamelKey(s string) string {
	return extractor.CamelKey(s)
}

// Records flattens a result into records ordered by namespace and key.
// The link list is left out.
func Records(r *Result) []MetaRecord {
	return extractor.Records(r)
}
