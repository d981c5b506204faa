// ABOUTME: Error types and handling for the LinkMeta library
// ABOUTME: Configuration errors plus helpers classifying extraction failures

package linkmeta

import (
	"errors"
	"fmt"

	coreerrors "linkmeta-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrClientClosed is returned when operations are attempted on a closed client
var ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeConfiguration
}

// IsInvalidURL reports whether extraction failed because the URL was malformed
func IsInvalidURL(err error) bool {
	return coreerrors.IsInvalidURL(err)
}

// IsFetchError reports whether the page could not be retrieved
func IsFetchError(err error) bool {
	return coreerrors.IsFetch(err)
}

// IsUpstreamPayloadError reports whether the relay answered without page contents
func IsUpstreamPayloadError(err error) bool {
	return coreerrors.IsUpstreamPayload(err)
}

// IsTimeout reports whether the fetch ran out of time
func IsTimeout(err error) bool {
	return coreerrors.IsTimeout(err)
}

// RequestedURL returns the URL an extraction error was raised for
func RequestedURL(err error) string {
	return coreerrors.URLOf(err)
}
