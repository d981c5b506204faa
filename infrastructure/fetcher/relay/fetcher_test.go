package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkmeta-api/core/domain"
	coreerrors "linkmeta-api/core/errors"
	"linkmeta-api/infrastructure/http/standard"
)

func newRelay(t *testing.T, status int, body string) (*Fetcher, *string) {
	t.Helper()
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return New(standard.NewStandardHTTPClient(5*time.Second), nil, server.URL+"/", 0), &requested
}

func TestRequestURL(t *testing.T) {
	f := New(nil, nil, "", 0)
	assert.Equal(t,
		"https://api.allorigins.win/get?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc",
		f.RequestURL("https://example.com/a?b=c"))
}

func TestFetch_Success(t *testing.T) {
	f, requested := newRelay(t, http.StatusOK, `{
		"contents": "<html><title>Relayed</title></html>",
		"status": {"url": "https://example.com", "content_type": "text/html; charset=UTF-8", "content_length": 35, "http_code": 200, "response_time": 12}
	}`)

	resp, err := f.Fetch(context.Background(), "https://example.com", domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", *requested)
	assert.Equal(t, "<html><title>Relayed</title></html>", resp.Contents)
	assert.Equal(t, "text/html; charset=UTF-8", resp.Headers.Get(domain.HeaderContentType))
	assert.Equal(t, "35", resp.Headers.Get(domain.HeaderContentLength))
}

func TestFetch_EmptyContentsIsNotMissing(t *testing.T) {
	f, _ := newRelay(t, http.StatusOK, `{"contents": "", "status": {"http_code": 200}}`)

	resp, err := f.Fetch(context.Background(), "https://example.com", domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Contents)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		upstream   bool
		statusCode int
		contains   string
	}{
		{
			name:     "missing contents",
			status:   http.StatusOK,
			body:     `{"status": {"http_code": 200}}`,
			upstream: true,
			contains: "missing contents",
		},
		{
			name:     "null contents",
			status:   http.StatusOK,
			body:     `{"contents": null}`,
			upstream: true,
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     `<html>oops</html>`,
			upstream: true,
		},
		{
			name:       "relay status",
			status:     http.StatusBadGateway,
			body:       `{}`,
			statusCode: http.StatusBadGateway,
		},
		{
			name:       "target status",
			status:     http.StatusOK,
			body:       `{"contents": "", "status": {"http_code": 404}}`,
			statusCode: http.StatusNotFound,
		},
		{
			name:     "string error",
			status:   http.StatusOK,
			body:     `{"contents": null, "error": "getaddrinfo ENOTFOUND"}`,
			contains: "upstream error: getaddrinfo ENOTFOUND",
		},
		{
			name:     "object error",
			status:   http.StatusOK,
			body:     `{"error": {"code": "ECONNRESET", "message": "socket hang up"}}`,
			contains: "socket hang up",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newRelay(t, tt.status, tt.body)

			_, err := f.Fetch(context.Background(), "https://example.com", domain.FetchOptions{})
			require.Error(t, err)

			if tt.upstream {
				assert.True(t, coreerrors.IsUpstreamPayload(err), "want UpstreamPayloadError, got %T", err)
			} else {
				var fe *coreerrors.FetchError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.statusCode, fe.StatusCode)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "", errorText(nil))
	assert.Equal(t, "", errorText([]byte("null")))
	assert.Equal(t, "", errorText([]byte("false")))
	assert.Equal(t, "boom", errorText([]byte(`"boom"`)))
	assert.Equal(t, "ETIMEDOUT", errorText([]byte(`{"code":"ETIMEDOUT"}`)))
	assert.Equal(t, "42", errorText([]byte(`42`)))
}
