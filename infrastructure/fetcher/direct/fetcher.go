// ABOUTME: Direct fetcher retrieving pages straight from the target site
// ABOUTME: One GET per call through the injected HTTP client, body capped at a size limit

package direct

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"linkmeta-api/core/domain"
	coreerrors "linkmeta-api/core/errors"
	"linkmeta-api/core/interfaces"
)

// DefaultMaxBodyBytes caps how much of a page is read
const DefaultMaxBodyBytes int64 = 5 * 1024 * 1024

// Fetcher implements interfaces.Fetcher with a plain GET
type Fetcher struct {
	client       interfaces.HTTPClient
	logger       interfaces.Logger
	maxBodyBytes int64
}

// New creates a direct fetcher. A non-positive maxBodyBytes uses DefaultMaxBodyBytes.
func New(client interfaces.HTTPClient, logger interfaces.Logger, maxBodyBytes int64) *Fetcher {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Fetcher{
		client:       client,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Fetch retrieves url and returns its body and the selected response headers
func (f *Fetcher) Fetch(ctx context.Context, url string, opts domain.FetchOptions) (*interfaces.FetchResponse, error) {
	start := time.Now()

	resp, err := f.client.Get(ctx, url, opts.Headers)
	if err != nil {
		f.debug("Direct fetch failed", url, start, err)
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		err := &coreerrors.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
		}
		f.debug("Direct fetch returned non-success status", url, start, err)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), f.maxBodyBytes))
	if err != nil {
		f.debug("Direct fetch body read failed", url, start, err)
		return nil, &coreerrors.FetchError{URL: url, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if f.logger != nil {
		f.logger.Debug("Direct fetch completed", map[string]interface{}{
			"url":         url,
			"status":      resp.StatusCode(),
			"bytes":       len(body),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return &interfaces.FetchResponse{
		Contents: string(body),
		Headers:  interfaces.SelectHeaders(resp.Header),
	}, nil
}

func (f *Fetcher) debug(msg, url string, start time.Time, err error) {
	if f.logger == nil {
		return
	}
	f.logger.Debug(msg, map[string]interface{}{
		"url":         url,
		"error":       err.Error(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
