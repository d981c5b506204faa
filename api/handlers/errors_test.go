package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"

	"linkmeta-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "nil error returns nil",
			input:          nil,
			expectedStatus: 0,
			expectedInMsg:  "",
		},
		{
			name:           "InvalidURLError returns 400",
			input:          errors.NewMetadataError("nope", &errors.InvalidURLError{URL: "nope"}),
			expectedStatus: 400,
			expectedInMsg:  "Failed to fetch metadata:",
		},
		{
			name:           "FetchError returns 502",
			input:          errors.NewMetadataError("https://example.com", &errors.FetchError{URL: "https://example.com", StatusCode: 404, Message: "Not Found"}),
			expectedStatus: 502,
			expectedInMsg:  "HTTP 404",
		},
		{
			name:           "UpstreamPayloadError returns 502",
			input:          errors.NewMetadataError("https://example.com", &errors.UpstreamPayloadError{URL: "https://example.com", Message: "response missing contents"}),
			expectedStatus: 502,
			expectedInMsg:  "response missing contents",
		},
		{
			name:           "timed out fetch returns 504",
			input:          errors.NewMetadataError("https://example.com", &errors.FetchError{URL: "https://example.com", Err: context.DeadlineExceeded}),
			expectedStatus: 504,
			expectedInMsg:  "deadline exceeded",
		},
		{
			name:           "wrapped FetchError returns 502",
			input:          fmt.Errorf("context: %w", &errors.FetchError{URL: "https://example.com", Message: "refused"}),
			expectedStatus: 502,
			expectedInMsg:  "refused",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("some unknown error"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			if tt.input == nil {
				assert.Nil(t, result)
				return
			}

			humaErr, ok := result.(*huma.ErrorModel)
			assert.True(t, ok, "Expected huma.ErrorModel")
			assert.Equal(t, tt.expectedStatus, humaErr.Status)
			assert.Contains(t, humaErr.Detail, tt.expectedInMsg)
		})
	}
}
