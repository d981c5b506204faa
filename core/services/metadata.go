// ABOUTME: Metadata service validating URLs, fetching pages and running the extractor
// ABOUTME: Every failure is surfaced as a single MetadataError carrying the cause and requested URL

package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"linkmeta-api/core/domain"
	coreerrors "linkmeta-api/core/errors"
	"linkmeta-api/core/extractor"
	"linkmeta-api/core/interfaces"
	"linkmeta-api/pkg/utils/urls"
)

// DefaultBatchConcurrency caps concurrent fetches in a batch
const DefaultBatchConcurrency = 5

// MetadataService handles metadata extraction from URLs
type MetadataService struct {
	deps             interfaces.Dependencies
	defaultTimeout   time.Duration
	batchConcurrency int
}

// Option configures a MetadataService
type Option func(*MetadataService)

// WithDefaultTimeout sets the timeout used when a call does not specify one
func WithDefaultTimeout(d time.Duration) Option {
	return func(s *MetadataService) {
		if d > 0 {
			s.defaultTimeout = d
		}
	}
}

// WithBatchConcurrency sets how many batch URLs are fetched at once
func WithBatchConcurrency(n int) Option {
	return func(s *MetadataService) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// NewMetadataService creates a new metadata service
func NewMetadataService(deps interfaces.Dependencies, opts ...Option) *MetadataService {
	s := &MetadataService{
		deps:             deps,
		defaultTimeout:   domain.DefaultTimeout,
		batchConcurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAndExtract fetches targetURL and extracts its metadata. The requested
// URL, not any redirect target, is the base for resolving relative links.
func (s *MetadataService) FetchAndExtract(ctx context.Context, targetURL string, opts domain.Options) (*domain.Result, error) {
	if !urls.IsValidURL(targetURL) {
		return nil, coreerrors.NewMetadataError(targetURL, &coreerrors.InvalidURLError{URL: targetURL})
	}
	if s.deps.Fetcher == nil {
		return nil, coreerrors.NewMetadataError(targetURL, &coreerrors.FetchError{URL: targetURL, Message: "no fetcher configured"})
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}
	if timeout > domain.MaxTimeout {
		timeout = domain.MaxTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	page, err := s.deps.Fetcher.Fetch(fetchCtx, targetURL, opts.FetchOptions)
	if err != nil {
		s.logWarn("Metadata fetch failed", map[string]interface{}{
			"url":         targetURL,
			"host":        urls.Host(targetURL),
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, coreerrors.NewMetadataError(targetURL, asFetchError(targetURL, err))
	}

	result := extractor.Extract(domain.Document{HTML: page.Contents, BaseURL: targetURL}, opts)

	if opts.IncludeHTML {
		html := page.Contents
		result.HTML = &html
	}

	if opts.IncludeResponseHeaders {
		result.Headers = make(map[string]string)
		for _, name := range domain.ResponseHeaderNames {
			if v := page.Headers.Get(name); v != "" {
				result.Headers[name] = v
			}
		}
	}

	s.logDebug("Metadata extracted", map[string]interface{}{
		"url":         targetURL,
		"host":        urls.Host(targetURL),
		"namespaces":  len(result.Namespaces()),
		"bytes":       len(page.Contents),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result, nil
}

// FetchAndExtractBatch extracts metadata for several URLs concurrently.
// Results are returned in input order, one per URL.
func (s *MetadataService) FetchAndExtractBatch(ctx context.Context, targetURLs []string, opts domain.Options) []domain.BatchItem {
	results := make([]domain.BatchItem, len(targetURLs))
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, s.batchConcurrency)

	for i, u := range targetURLs {
		wg.Add(1)
		go func(idx int, targetURL string) {
			defer wg.Done()

			item := domain.BatchItem{URL: targetURL}

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				item.Error = coreerrors.NewMetadataError(targetURL, &coreerrors.FetchError{URL: targetURL, Err: ctx.Err()}).Error()
				results[idx] = item
				return
			}

			result, err := s.FetchAndExtract(ctx, targetURL, opts)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Metadata = result
			}
			results[idx] = item
		}(i, u)
	}

	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	s.logInfo("Batch metadata extraction completed", map[string]interface{}{
		"urls":   len(targetURLs),
		"failed": failed,
	})

	return results
}

// Extract runs the extractor on markup the caller already holds
func (s *MetadataService) Extract(doc domain.Document, opts domain.Options) *domain.Result {
	doc.BaseURL = strings.TrimSpace(doc.BaseURL)
	result := extractor.Extract(doc, opts)
	if opts.IncludeHTML {
		html := doc.HTML
		result.HTML = &html
	}
	return result
}

// asFetchError makes sure fetcher failures reach the caller as one of the
// typed fetch errors.
func asFetchError(targetURL string, err error) error {
	if coreerrors.IsFetch(err) || coreerrors.IsUpstreamPayload(err) {
		return err
	}
	return &coreerrors.FetchError{URL: targetURL, Err: err}
}

func (s *MetadataService) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

func (s *MetadataService) logInfo(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}

func (s *MetadataService) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}
