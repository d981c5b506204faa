// Package api provides the HTTP API layer for the LinkMeta service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	GET  /metadata?url=...     extract metadata from one page
//	POST /metadata             same, with extra request headers
//	POST /metadata/batch       several pages, results in request order
//	POST /extract              extract from supplied HTML, no fetch
//	GET  /health               liveness
//
// The JSON spec is served at /openapi.json and the interactive docs at /docs.
//
// # Middleware
//
// - CORS for browser clients
// - Request logging with X-Request-ID
// - Rate limiting per client IP
// - Optional gzip compression
//
// # Usage Example
//
//	srv := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//	defer srv.Close()
//
//	handlers.NewMetadataHandler(metadataService, 20).RegisterRoutes(srv.API)
//	handlers.RegisterHealth(srv.API)
//
//	http.ListenAndServe(":8000", srv.Router)
//
// # Error Handling
//
// Errors use the RFC 7807 format. Invalid URLs map to 400, fetch and relay
// failures to 502, fetch timeouts to 504:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "Failed to fetch metadata: invalid URL: \"not a url\""
//	}
package api
