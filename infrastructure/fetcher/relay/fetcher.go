// ABOUTME: Relay fetcher routing page requests through a public CORS relay endpoint
// ABOUTME: Decodes the relay's JSON envelope and maps its status and error fields to fetch errors

package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"linkmeta-api/core/domain"
	coreerrors "linkmeta-api/core/errors"
	"linkmeta-api/core/interfaces"
)

// DefaultRelayURL is the relay used when none is configured
const DefaultRelayURL = "https://api.allorigins.win"

// defaultMaxEnvelopeBytes caps the relay response; the page is JSON-escaped inside it
const defaultMaxEnvelopeBytes int64 = 10 * 1024 * 1024

// envelope is the relay's response body
type envelope struct {
	Contents *string         `json:"contents"`
	Status   envelopeStatus  `json:"status"`
	Error    json.RawMessage `json:"error,omitempty"`
}

type envelopeStatus struct {
	URL           string `json:"url"`
	ContentType   string `json:"content_type"`
	ContentLength *int64 `json:"content_length"`
	HTTPCode      int    `json:"http_code"`
	ResponseTime  int    `json:"response_time"`
}

// Fetcher implements interfaces.Fetcher through the relay
type Fetcher struct {
	client           interfaces.HTTPClient
	logger           interfaces.Logger
	baseURL          string
	maxEnvelopeBytes int64
}

// New creates a relay fetcher. An empty baseURL uses DefaultRelayURL.
func New(client interfaces.HTTPClient, logger interfaces.Logger, baseURL string, maxEnvelopeBytes int64) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultRelayURL
	}
	if maxEnvelopeBytes <= 0 {
		maxEnvelopeBytes = defaultMaxEnvelopeBytes
	}
	return &Fetcher{
		client:           client,
		logger:           logger,
		baseURL:          strings.TrimRight(baseURL, "/"),
		maxEnvelopeBytes: maxEnvelopeBytes,
	}
}

// RequestURL returns the relay URL used to fetch target
func (f *Fetcher) RequestURL(target string) string {
	return f.baseURL + "/get?url=" + url.QueryEscape(target)
}

// Fetch retrieves target through the relay
func (f *Fetcher) Fetch(ctx context.Context, target string, opts domain.FetchOptions) (*interfaces.FetchResponse, error) {
	start := time.Now()

	resp, err := f.client.Get(ctx, f.RequestURL(target), opts.Headers)
	if err != nil {
		f.warn("Relay request failed", target, start, err)
		return nil, &coreerrors.FetchError{URL: target, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		err := &coreerrors.FetchError{
			URL:        target,
			StatusCode: resp.StatusCode(),
			Message:    "relay returned " + http.StatusText(resp.StatusCode()),
		}
		f.warn("Relay returned non-success status", target, start, err)
		return nil, err
	}

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body(), f.maxEnvelopeBytes)).Decode(&env); err != nil {
		if ctx.Err() != nil {
			return nil, &coreerrors.FetchError{URL: target, Err: ctx.Err()}
		}
		return nil, &coreerrors.UpstreamPayloadError{URL: target, Message: fmt.Sprintf("invalid relay response: %v", err)}
	}

	if msg := errorText(env.Error); msg != "" {
		return nil, &coreerrors.FetchError{URL: target, Message: "upstream error: " + msg}
	}

	if code := env.Status.HTTPCode; code != 0 && (code < 200 || code >= 300) {
		return nil, &coreerrors.FetchError{URL: target, StatusCode: code, Message: http.StatusText(code)}
	}

	if env.Contents == nil {
		return nil, &coreerrors.UpstreamPayloadError{URL: target, Message: "response missing contents"}
	}

	if f.logger != nil {
		f.logger.Debug("Relay fetch completed", map[string]interface{}{
			"url":         target,
			"status":      env.Status.HTTPCode,
			"bytes":       len(*env.Contents),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return &interfaces.FetchResponse{
		Contents: *env.Contents,
		Headers:  interfaces.SelectHeaders(env.Status.header),
	}, nil
}

// header exposes the envelope status as response headers
func (s envelopeStatus) header(name string) string {
	switch name {
	case domain.HeaderContentType:
		return s.ContentType
	case domain.HeaderContentLength:
		if s.ContentLength != nil && *s.ContentLength >= 0 {
			return strconv.FormatInt(*s.ContentLength, 10)
		}
	}
	return ""
}

// errorText renders the envelope's error field, which may be a string or an object
func errorText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "false" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && (obj.Message != "" || obj.Code != "") {
		if obj.Message == "" {
			return obj.Code
		}
		return obj.Message
	}

	return trimmed
}

func (f *Fetcher) warn(msg, target string, start time.Time, err error) {
	if f.logger == nil {
		return
	}
	f.logger.Warn(msg, map[string]interface{}{
		"url":         target,
		"relay":       f.baseURL,
		"error":       err.Error(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
