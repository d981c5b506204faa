// ABOUTME: Mappers converting extraction results into API response DTOs
// ABOUTME: Flattens the other namespace so links sit beside the raw meta names

package mappers

import (
	"linkmeta-api/api/dto/responses"
	"linkmeta-api/core/domain"
)

// ToMetadataResponse converts a domain result into its API representation
func ToMetadataResponse(r *domain.Result) *responses.MetadataResponse {
	if r == nil {
		return nil
	}

	resp := &responses.MetadataResponse{
		Standard: r.Standard,
		OG:       r.OG,
		Twitter:  r.Twitter,
		HTML:     r.HTML,
		Headers:  r.Headers,
	}

	if !r.Other.IsEmpty() {
		other := make(map[string]interface{}, len(r.Other.Values)+1)
		for k, v := range r.Other.Values {
			other[k] = v
		}
		if len(r.Other.Links) > 0 {
			other[domain.LinksKey] = r.Other.Links
		}
		resp.Other = other
	}

	return resp
}

// ToBatchResponse converts batch items into the batch response, keeping order
func ToBatchResponse(items []domain.BatchItem) responses.BatchMetadataResponse {
	results := make([]responses.BatchResult, len(items))
	for i, item := range items {
		results[i] = responses.BatchResult{
			URL:      item.URL,
			Metadata: ToMetadataResponse(item.Metadata),
			Error:    item.Error,
		}
	}
	return responses.BatchMetadataResponse{Results: results}
}
