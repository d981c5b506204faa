// ABOUTME: Options that control what an extraction collects and how the page is fetched
// ABOUTME: Timeout and fetch options belong to the fetcher, the rest to the extractor

package domain

import "time"

// DefaultTimeout bounds a single fetch when the caller does not set one
const DefaultTimeout = 5 * time.Second

// MaxTimeout caps the timeout a caller may ask for
const MaxTimeout = 60 * time.Second

// FetchOptions are passed through to the fetcher untouched
type FetchOptions struct {
	// Headers are added to the outgoing request
	Headers map[string]string
}

// Options controls one fetch-and-extract call
type Options struct {
	// IncludeAllMeta captures tags outside og/twitter/standard into the other namespace
	IncludeAllMeta bool

	// IncludeHTML attaches the verbatim page source to the result
	IncludeHTML bool

	// IncludeResponseHeaders attaches content-type, content-length and last-modified
	IncludeResponseHeaders bool

	// Timeout bounds the fetch; zero means DefaultTimeout
	Timeout time.Duration

	// FetchOptions are handed to the fetcher
	FetchOptions FetchOptions
}

// EffectiveTimeout returns the timeout to apply to the fetch
func (o Options) EffectiveTimeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// BatchItem is the outcome for one URL of a batch call
type BatchItem struct {
	URL      string  `json:"url"`
	Metadata *Result `json:"metadata,omitempty"`
	Error    string  `json:"error,omitempty"`
}
