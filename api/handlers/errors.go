// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts metadata errors to appropriate HTTP responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"linkmeta-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// The message keeps the "Failed to fetch metadata:" prefix.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsInvalidURL(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsTimeout(err):
		return huma.Error504GatewayTimeout(err.Error())
	case errors.IsFetch(err), errors.IsUpstreamPayload(err):
		return huma.Error502BadGateway(err.Error())
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
