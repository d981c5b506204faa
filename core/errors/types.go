// ABOUTME: Custom error types for metadata fetching and extraction
// ABOUTME: Every failure reaching a caller is wrapped in a MetadataError carrying the requested URL

package errors

import (
	"context"
	"errors"
	"fmt"
)

// MetadataErrorPrefix starts the message of every error returned to callers
const MetadataErrorPrefix = "Failed to fetch metadata"

// InvalidURLError represents a malformed input URL
type InvalidURLError struct {
	URL string
}

// Error implements the error interface
func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL: %q", e.URL)
}

// FetchError represents a network, timeout, HTTP status or upstream-reported failure
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch error for %s: HTTP %d: %s", e.URL, e.StatusCode, msg)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, msg)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the fetch was cut off by its deadline
func (e *FetchError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// UpstreamPayloadError represents a response envelope missing the expected content
type UpstreamPayloadError struct {
	URL     string
	Message string
}

// Error implements the error interface
func (e *UpstreamPayloadError) Error() string {
	return fmt.Sprintf("unexpected upstream payload for %s: %s", e.URL, e.Message)
}

// MetadataError is the single error shape surfaced by fetch-and-extract
type MetadataError struct {
	URL   string
	Cause error
}

// Error implements the error interface
func (e *MetadataError) Error() string {
	if e.Cause == nil {
		return MetadataErrorPrefix
	}
	return fmt.Sprintf("%s: %s", MetadataErrorPrefix, e.Cause.Error())
}

// Unwrap returns the underlying cause
func (e *MetadataError) Unwrap() error {
	return e.Cause
}

// NewMetadataError wraps err for the given URL. Errors that are already
// MetadataErrors are returned unchanged.
func NewMetadataError(url string, err error) error {
	if err == nil {
		return nil
	}
	var me *MetadataError
	if errors.As(err, &me) {
		return err
	}
	return &MetadataError{URL: url, Cause: err}
}

// IsInvalidURL checks if an error is an InvalidURLError
func IsInvalidURL(err error) bool {
	var target *InvalidURLError
	return errors.As(err, &target)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var target *FetchError
	return errors.As(err, &target)
}

// IsUpstreamPayload checks if an error is an UpstreamPayloadError
func IsUpstreamPayload(err error) bool {
	var target *UpstreamPayloadError
	return errors.As(err, &target)
}

// IsTimeout checks if an error came from a fetch deadline
func IsTimeout(err error) bool {
	var target *FetchError
	return errors.As(err, &target) && target.Timeout()
}

// URLOf returns the requested URL carried by a MetadataError, if any
func URLOf(err error) string {
	var me *MetadataError
	if errors.As(err, &me) {
		return me.URL
	}
	return ""
}

