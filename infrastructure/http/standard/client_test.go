package standard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewStandardHTTPClient(t *testing.T) {
	timeout := 10 * time.Second
	client := NewStandardHTTPClient(timeout)

	if client == nil {
		t.Fatal("NewStandardHTTPClient returned nil")
	}

	if client.client.Timeout != timeout {
		t.Errorf("Client timeout = %v, want %v", client.client.Timeout, timeout)
	}

	if client.userAgent != DefaultUserAgent {
		t.Errorf("userAgent = %v, want %v", client.userAgent, DefaultUserAgent)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}

		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body())
	resp.Body().Close()
	if err != nil {
		t.Errorf("Failed to read body: %v", err)
	}
	if string(body) != "<html></html>" {
		t.Errorf("Body = %s, want '<html></html>'", string(body))
	}
	if resp.Header("content-type") != "text/html" {
		t.Errorf("Header(content-type) = %s, want text/html", resp.Header("content-type"))
	}
}

func TestStandardHTTPClient_Get_Headers(t *testing.T) {
	var captured http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, WithUserAgent("custom-agent/2.0"))

	resp, err := client.Get(context.Background(), server.URL, map[string]string{
		"Accept-Language": "de-DE",
		"X-Trace":         "abc",
	})
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if captured.Get("User-Agent") != "custom-agent/2.0" {
		t.Errorf("User-Agent = %s, want custom-agent/2.0", captured.Get("User-Agent"))
	}
	if captured.Get("Accept-Language") != "de-DE" {
		t.Errorf("Accept-Language = %s, want de-DE", captured.Get("Accept-Language"))
	}
	if captured.Get("X-Trace") != "abc" {
		t.Errorf("X-Trace = %s, want abc", captured.Get("X-Trace"))
	}
	if !strings.Contains(captured.Get("Accept"), "text/html") {
		t.Errorf("Accept = %s, should contain text/html", captured.Get("Accept"))
	}
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	resp, err := client.Get(ctx, server.URL, nil)
	if err == nil {
		resp.Body().Close()
		t.Fatal("Get should return error for context timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Error should be context deadline exceeded, got: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("Get took %v, should abort promptly", time.Since(start))
	}
}

func TestStandardHTTPClient_Get_SingleAttempt(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("Attempts = %d, want 1", got)
	}
	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusServiceUnavailable)
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), "not a valid url", nil)
	if err == nil {
		resp.Body().Close()
		t.Error("Get should return error for invalid URL")
	}
}

type countingTransport struct {
	calls int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.next.RoundTrip(req)
}

func TestStandardHTTPClient_WithTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt := &countingTransport{next: http.DefaultTransport}
	client := NewStandardHTTPClient(10*time.Second, WithTransport(rt))

	resp, err := client.Get(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if atomic.LoadInt32(&rt.calls) != 1 {
		t.Errorf("transport calls = %d, want 1", rt.calls)
	}
}

func TestHTTPResponse_Header(t *testing.T) {
	resp := &httpResponse{
		headers: http.Header{
			"Content-Type": []string{"text/html"},
			"X-Custom":     []string{"value1", "value2"},
		},
	}

	if resp.Header("Content-Type") != "text/html" {
		t.Errorf("Header(Content-Type) = %s, want text/html", resp.Header("Content-Type"))
	}

	if resp.Header("content-type") != "text/html" {
		t.Errorf("Header(content-type) = %s, want text/html", resp.Header("content-type"))
	}

	if resp.Header("Non-Existent") != "" {
		t.Errorf("Header(Non-Existent) = %s, want empty string", resp.Header("Non-Existent"))
	}
}
