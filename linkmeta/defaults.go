// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for loggers and HTTP clients

package linkmeta

import (
	"io"
	"time"

	"linkmeta-api/core/interfaces"
	httpInfra "linkmeta-api/infrastructure/http/standard"
	"linkmeta-api/infrastructure/logger/structured"
)

// DefaultHTTPClient creates an HTTP client with the given timeout
func DefaultHTTPClient(timeout time.Duration) interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(timeout)
}

// DefaultLogger creates a text logger at the given level writing to w
func DefaultLogger(level string, w io.Writer) (interfaces.Logger, error) {
	logger, err := structured.NewLogger(structured.Options{Level: level, Output: w})
	if err != nil {
		return nil, NewError(ErrorTypeConfiguration, "invalid logger settings").WithCause(err)
	}
	return logger, nil
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return &quietLogger{}
}

// quietLogger is a logger that discards all output
type quietLogger struct{}

func (q *quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (q *quietLogger) Info(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Error(msg string, fields map[string]interface{}) {}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}
