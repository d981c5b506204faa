// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, request validation and the shared middleware chain

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"linkmeta-api/api/middleware"
	"linkmeta-api/core/interfaces"
)

const (
	apiTitle   = "LinkMeta API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
	Compress   bool          // gzip responses when the client accepts it
}

// Server bundles the Huma API with its router and any background resources
type Server struct {
	API     huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// Close releases background resources held by the middleware
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
}

// corsHandler allows any origin to read metadata
func corsHandler() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Window", "Retry-After"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}).Handler
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Extracts standard, Open Graph and Twitter metadata from web pages"
	return config
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, humaConfig())

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) *Server {
	router := chi.NewRouter()
	srv := &Server{Router: router}

	// CORS first so preflights are never rate limited
	router.Use(corsHandler())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		srv.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(srv.limiter))
	}

	if cfg.Compress {
		router.Use(func(next http.Handler) http.Handler {
			return gzhttp.GzipHandler(next)
		})
	}

	srv.API = humachi.New(router, humaConfig())

	return srv
}
