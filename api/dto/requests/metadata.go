// ABOUTME: Request DTOs for metadata extraction endpoints
// ABOUTME: Converts API input into extraction options for the metadata service

package requests

import (
	"time"

	"linkmeta-api/core/domain"
)

// MaxTimeoutMillis caps the per-request fetch timeout a caller may ask for
const MaxTimeoutMillis = int(domain.MaxTimeout / time.Millisecond)

// MetadataQuery represents the query parameters of GET /metadata
type MetadataQuery struct {
	URL                    string `query:"url" required:"true" doc:"Page URL to extract metadata from"`
	IncludeAllMeta         bool   `query:"includeAllMeta" doc:"Collect unrecognized meta tags and link elements under other"`
	IncludeHTML            bool   `query:"includeHtml" doc:"Attach the raw page HTML"`
	IncludeResponseHeaders bool   `query:"includeResponseHeaders" doc:"Attach content-type, content-length and last-modified"`
	Timeout                int    `query:"timeout" minimum:"0" maximum:"60000" doc:"Fetch timeout in milliseconds (default 5000)"`
}

// Options converts the query into extraction options
func (q *MetadataQuery) Options() domain.Options {
	return domain.Options{
		IncludeAllMeta:         q.IncludeAllMeta,
		IncludeHTML:            q.IncludeHTML,
		IncludeResponseHeaders: q.IncludeResponseHeaders,
		Timeout:                millis(q.Timeout),
	}
}

// ExtractionOptions controls what a metadata request collects
type ExtractionOptions struct {
	// IncludeAllMeta collects unrecognized tags and link elements
	IncludeAllMeta bool `json:"includeAllMeta,omitempty" doc:"Collect unrecognized meta tags and link elements under other"`

	// IncludeHTML attaches the raw page HTML
	IncludeHTML bool `json:"includeHtml,omitempty" doc:"Attach the raw page HTML"`

	// IncludeResponseHeaders attaches selected response headers
	IncludeResponseHeaders bool `json:"includeResponseHeaders,omitempty" doc:"Attach content-type, content-length and last-modified"`

	// Timeout is the fetch timeout in milliseconds
	Timeout int `json:"timeout,omitempty" minimum:"0" maximum:"60000" doc:"Fetch timeout in milliseconds (default 5000)"`

	// Headers are sent with the outgoing page request
	Headers map[string]string `json:"headers,omitempty" doc:"Extra request headers sent to the target site"`
}

// Options converts the request options into extraction options
func (o *ExtractionOptions) Options() domain.Options {
	if o == nil {
		return domain.Options{}
	}
	return domain.Options{
		IncludeAllMeta:         o.IncludeAllMeta,
		IncludeHTML:            o.IncludeHTML,
		IncludeResponseHeaders: o.IncludeResponseHeaders,
		Timeout:                millis(o.Timeout),
		FetchOptions:           domain.FetchOptions{Headers: o.Headers},
	}
}

// MetadataRequest represents the request body for POST /metadata
type MetadataRequest struct {
	// URL is the page to extract metadata from
	URL string `json:"url" required:"true" doc:"Page URL to extract metadata from"`

	IncludeAllMeta         bool              `json:"includeAllMeta,omitempty" doc:"Collect unrecognized meta tags and link elements under other"`
	IncludeHTML            bool              `json:"includeHtml,omitempty" doc:"Attach the raw page HTML"`
	IncludeResponseHeaders bool              `json:"includeResponseHeaders,omitempty" doc:"Attach content-type, content-length and last-modified"`
	Timeout                int               `json:"timeout,omitempty" minimum:"0" maximum:"60000" doc:"Fetch timeout in milliseconds (default 5000)"`
	Headers                map[string]string `json:"headers,omitempty" doc:"Extra request headers sent to the target site"`
}

// Options converts the request into extraction options
func (r *MetadataRequest) Options() domain.Options {
	opts := ExtractionOptions{
		IncludeAllMeta:         r.IncludeAllMeta,
		IncludeHTML:            r.IncludeHTML,
		IncludeResponseHeaders: r.IncludeResponseHeaders,
		Timeout:                r.Timeout,
		Headers:                r.Headers,
	}
	return opts.Options()
}

// BatchMetadataRequest represents the request body for POST /metadata/batch
type BatchMetadataRequest struct {
	// URLs are the pages to extract metadata from
	URLs []string `json:"urls" minItems:"1" doc:"Page URLs to extract metadata from"`

	// Options controls extraction for every URL
	Options *ExtractionOptions `json:"options,omitempty" doc:"Optional extraction configuration"`
}

// ExtractRequest represents the request body for POST /extract
type ExtractRequest struct {
	// HTML is the markup to scan
	HTML string `json:"html" doc:"Page markup to extract metadata from"`

	// BaseURL resolves the favicon when it is relative
	BaseURL string `json:"baseUrl,omitempty" doc:"URL the markup was served from"`

	// IncludeAllMeta collects unrecognized tags and link elements
	IncludeAllMeta bool `json:"includeAllMeta,omitempty" doc:"Collect unrecognized meta tags and link elements under other"`
}

// Document converts the request into a document for the extractor
func (r *ExtractRequest) Document() domain.Document {
	return domain.Document{HTML: r.HTML, BaseURL: r.BaseURL}
}

func millis(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	if ms > MaxTimeoutMillis {
		ms = MaxTimeoutMillis
	}
	return time.Duration(ms) * time.Millisecond
}
