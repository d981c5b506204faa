// ABOUTME: Health check handler for liveness probes
// ABOUTME: Always reports ok while the process is serving

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"linkmeta-api/api/dto/responses"
)

// HealthOutput defines the output for GET /health
type HealthOutput struct {
	Body responses.HealthResponse
}

// RegisterHealth registers the liveness endpoint
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service liveness",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{Status: "ok"}}, nil
	})
}
