// Package core contains the metadata extraction logic of the LinkMeta API.
// It does not depend on the HTTP layer and can be used on its own.
//
// The core package is organized into several sub-packages:
//
// - domain: Extraction results, namespaces and per-call options
// - extractor: Meta tag scanning, key classification and title/canonical/favicon lookups
// - services: Fetch-then-extract orchestration with timeouts and batching
// - errors: Typed errors for invalid URLs, failed fetches and bad relay payloads
// - interfaces: Contracts for external dependencies (fetcher, HTTP, logger)
//
// # Usage Example
//
//	import (
//	    "linkmeta-api/core/domain"
//	    "linkmeta-api/core/interfaces"
//	    "linkmeta-api/core/services"
//	)
//
//	deps := interfaces.Dependencies{
//	    Fetcher: myFetcher, // implements interfaces.Fetcher
//	    Logger:  myLogger,  // implements interfaces.Logger
//	}
//
//	svc := services.NewMetadataService(deps)
//	result, err := svc.FetchAndExtract(ctx, "https://go.dev/", domain.Options{
//	    IncludeAllMeta: true,
//	})
package core
