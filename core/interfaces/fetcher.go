// ABOUTME: Fetcher contract for retrieving a page's HTML and response headers
// ABOUTME: Implementations cover direct HTTP, the CORS relay and a colly collector

package interfaces

import (
	"context"
	"net/http"

	"linkmeta-api/core/domain"
)

// FetchResponse is the raw page handed to the extractor
type FetchResponse struct {
	// Contents is the page body as text
	Contents string

	// Headers are the response headers the fetcher could observe
	Headers http.Header
}

// Fetcher retrieves a page. Failures are reported as *errors.FetchError or
// *errors.UpstreamPayloadError; implementations never retry.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts domain.FetchOptions) (*FetchResponse, error)
}

// SelectHeaders copies the response headers a result may carry from lookup.
// Headers that lookup reports as empty are left out.
func SelectHeaders(lookup func(name string) string) http.Header {
	h := make(http.Header)
	for _, name := range domain.ResponseHeaderNames {
		if v := lookup(name); v != "" {
			h.Set(name, v)
		}
	}
	return h
}
