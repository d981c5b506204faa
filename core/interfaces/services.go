// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"linkmeta-api/core/domain"
)

// MetadataService fetches pages and extracts their metadata
type MetadataService interface {
	// FetchAndExtract validates url, fetches it and returns the extracted metadata
	FetchAndExtract(ctx context.Context, url string, opts domain.Options) (*domain.Result, error)

	// FetchAndExtractBatch runs FetchAndExtract for every URL, preserving input order
	FetchAndExtractBatch(ctx context.Context, urls []string, opts domain.Options) []domain.BatchItem

	// Extract runs extraction on markup the caller already has
	Extract(doc domain.Document, opts domain.Options) *domain.Result
}
