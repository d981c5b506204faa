// ABOUTME: Metadata handlers for extracting Open Graph, Twitter and standard meta tags from web pages
// ABOUTME: Provides single, batch and inline-markup extraction endpoints

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"linkmeta-api/api/dto/mappers"
	"linkmeta-api/api/dto/requests"
	"linkmeta-api/api/dto/responses"
	"linkmeta-api/core/interfaces"
)

// DefaultMaxBatchURLs caps the URLs accepted by one batch request
const DefaultMaxBatchURLs = 20

// MetadataHandler handles metadata extraction
type MetadataHandler struct {
	service      interfaces.MetadataService
	maxBatchURLs int
}

// NewMetadataHandler creates a new metadata handler. A non-positive
// maxBatchURLs uses DefaultMaxBatchURLs.
func NewMetadataHandler(service interfaces.MetadataService, maxBatchURLs int) *MetadataHandler {
	if maxBatchURLs <= 0 {
		maxBatchURLs = DefaultMaxBatchURLs
	}
	return &MetadataHandler{
		service:      service,
		maxBatchURLs: maxBatchURLs,
	}
}

// RegisterRoutes registers metadata routes
func (h *MetadataHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getMetadata",
		Method:      http.MethodGet,
		Path:        "/metadata",
		Summary:     "Extract metadata from a web page",
		Description: "Fetches the page and returns its standard, Open Graph and Twitter metadata",
		Tags:        []string{"Metadata"},
	}, h.GetMetadata)

	huma.Register(api, huma.Operation{
		OperationID: "extractMetadata",
		Method:      http.MethodPost,
		Path:        "/metadata",
		Summary:     "Extract metadata from a web page",
		Description: "Same as GET /metadata, with custom request headers for the target site",
		Tags:        []string{"Metadata"},
	}, h.PostMetadata)

	huma.Register(api, huma.Operation{
		OperationID: "extractMetadataBatch",
		Method:      http.MethodPost,
		Path:        "/metadata/batch",
		Summary:     "Extract metadata from several web pages",
		Description: "Fetches every URL concurrently and returns one result per URL in request order",
		Tags:        []string{"Metadata"},
	}, h.BatchMetadata)

	huma.Register(api, huma.Operation{
		OperationID: "extractFromMarkup",
		Method:      http.MethodPost,
		Path:        "/extract",
		Summary:     "Extract metadata from supplied HTML",
		Description: "Runs extraction on markup the caller already has; nothing is fetched",
		Tags:        []string{"Metadata"},
	}, h.ExtractMarkup)
}

// GetMetadataInput defines the input for GET /metadata
type GetMetadataInput struct {
	requests.MetadataQuery
}

// PostMetadataInput defines the input for POST /metadata
type PostMetadataInput struct {
	Body requests.MetadataRequest
}

// MetadataOutput defines the output for single-page extraction
type MetadataOutput struct {
	Body *responses.MetadataResponse
}

// BatchMetadataInput defines the input for POST /metadata/batch
type BatchMetadataInput struct {
	Body requests.BatchMetadataRequest
}

// BatchMetadataOutput defines the output for POST /metadata/batch
type BatchMetadataOutput struct {
	Body responses.BatchMetadataResponse
}

// ExtractMarkupInput defines the input for POST /extract
type ExtractMarkupInput struct {
	Body requests.ExtractRequest
}

// GetMetadata handles the GET /metadata endpoint
func (h *MetadataHandler) GetMetadata(ctx context.Context, input *GetMetadataInput) (*MetadataOutput, error) {
	result, err := h.service.FetchAndExtract(ctx, input.URL, input.MetadataQuery.Options())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &MetadataOutput{Body: mappers.ToMetadataResponse(result)}, nil
}

// PostMetadata handles the POST /metadata endpoint
func (h *MetadataHandler) PostMetadata(ctx context.Context, input *PostMetadataInput) (*MetadataOutput, error) {
	result, err := h.service.FetchAndExtract(ctx, input.Body.URL, input.Body.Options())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &MetadataOutput{Body: mappers.ToMetadataResponse(result)}, nil
}

// BatchMetadata handles the POST /metadata/batch endpoint
func (h *MetadataHandler) BatchMetadata(ctx context.Context, input *BatchMetadataInput) (*BatchMetadataOutput, error) {
	if len(input.Body.URLs) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}
	if len(input.Body.URLs) > h.maxBatchURLs {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Too many URLs: %d (max %d)", len(input.Body.URLs), h.maxBatchURLs))
	}

	items := h.service.FetchAndExtractBatch(ctx, input.Body.URLs, input.Body.Options.Options())
	return &BatchMetadataOutput{Body: mappers.ToBatchResponse(items)}, nil
}

// ExtractMarkup handles the POST /extract endpoint
func (h *MetadataHandler) ExtractMarkup(ctx context.Context, input *ExtractMarkupInput) (*MetadataOutput, error) {
	opts := requests.ExtractionOptions{IncludeAllMeta: input.Body.IncludeAllMeta}
	result := h.service.Extract(input.Body.Document(), opts.Options())
	return &MetadataOutput{Body: mappers.ToMetadataResponse(result)}, nil
}
