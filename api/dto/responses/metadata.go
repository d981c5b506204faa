// ABOUTME: Response DTOs for metadata extraction endpoints
// ABOUTME: Mirrors the extraction result with the other namespace flattened

package responses

// MetadataResponse is the extraction result as returned by the API
type MetadataResponse struct {
	Standard map[string]string      `json:"standard,omitempty" doc:"Standard meta names plus title, canonicalUrl and favicon"`
	OG       map[string]string      `json:"og,omitempty" doc:"Open Graph values keyed in camelCase"`
	Twitter  map[string]string      `json:"twitter,omitempty" doc:"Twitter card values keyed in camelCase"`
	Other    map[string]interface{} `json:"other,omitempty" doc:"Unrecognized meta values by raw name, plus a links list"`
	HTML     *string                `json:"html,omitempty" doc:"Raw page HTML"`
	Headers  map[string]string      `json:"headers,omitempty" doc:"Selected response headers"`
}

// BatchResult is the outcome for one URL of a batch request
type BatchResult struct {
	URL      string            `json:"url" doc:"Requested URL"`
	Metadata *MetadataResponse `json:"metadata,omitempty" doc:"Extracted metadata when the URL succeeded"`
	Error    string            `json:"error,omitempty" doc:"Failure message when the URL failed"`
}

// BatchMetadataResponse is the response for POST /metadata/batch
type BatchMetadataResponse struct {
	Results []BatchResult `json:"results" doc:"One result per requested URL, in request order"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok" doc:"Service status"`
}
