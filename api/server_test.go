package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"linkmeta-api/api/handlers"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func TestNewAPI(t *testing.T) {
	api, router := NewAPI()

	if api == nil {
		t.Error("NewAPI returned nil API")
	}
	if router == nil {
		t.Error("NewAPI returned nil router")
	}
}

func TestNewAPI_HasCorrectInfo(t *testing.T) {
	api, _ := NewAPI()

	info := api.OpenAPI().Info
	if info.Title != "LinkMeta API" {
		t.Errorf("API title = %s, want LinkMeta API", info.Title)
	}
	if info.Version != "1.0.0" {
		t.Errorf("API version = %s, want 1.0.0", info.Version)
	}
}

func TestAPI_OpenAPIEndpoint(t *testing.T) {
	_, router := NewAPI()

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("OpenAPI endpoint status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.oai.openapi+json" {
		t.Errorf("OpenAPI content-type = %s, want application/vnd.oai.openapi+json", ct)
	}
}

func TestAPI_CORSPreflight(t *testing.T) {
	_, router := NewAPI()

	req := httptest.NewRequest(http.MethodOptions, "/metadata", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestNewAPIWithMiddleware_RateLimitAndRequestID(t *testing.T) {
	srv := NewAPIWithMiddleware(APIConfig{
		Logger:     nopLogger{},
		RateLimit:  1,
		RateWindow: time.Minute,
	})
	defer srv.Close()
	handlers.RegisterHealth(srv.API)

	first := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "10.1.1.1:1000"
	srv.Router.ServeHTTP(first, req)

	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}
	if first.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "10.1.1.1:1000"
	srv.Router.ServeHTTP(second, req)

	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
}

func TestNewAPIWithMiddleware_Compress(t *testing.T) {
	srv := NewAPIWithMiddleware(APIConfig{Compress: true})
	defer srv.Close()

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", w.Header().Get("Content-Encoding"))
	}

	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	body, _ := io.ReadAll(zr)
	if !strings.Contains(string(body), "LinkMeta API") {
		t.Error("decompressed OpenAPI document should contain the API title")
	}
}
