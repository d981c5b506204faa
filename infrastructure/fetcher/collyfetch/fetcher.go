// ABOUTME: Colly-backed fetcher for sites that expect a crawler-style client
// ABOUTME: A fresh collector per call; the request is bound to the caller's context through the transport

package collyfetch

import (
	"context"
	"net/http"
	"time"

	"github.com/gocolly/colly"

	"linkmeta-api/core/domain"
	coreerrors "linkmeta-api/core/errors"
	"linkmeta-api/core/interfaces"
)

// DefaultUserAgent is the crawler identity many sites serve Open Graph tags to
const DefaultUserAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"

// DefaultMaxBodySize caps how much of a page colly reads
const DefaultMaxBodySize = 5 * 1024 * 1024

// Fetcher implements interfaces.Fetcher with a colly collector
type Fetcher struct {
	userAgent   string
	maxBodySize int
	transport   http.RoundTripper
	logger      interfaces.Logger
}

// New creates a colly fetcher. Zero values fall back to the package defaults
// and http.DefaultTransport.
func New(userAgent string, maxBodySize int, transport http.RoundTripper, logger interfaces.Logger) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Fetcher{
		userAgent:   userAgent,
		maxBodySize: maxBodySize,
		transport:   transport,
		logger:      logger,
	}
}

// contextTransport binds every request made by a collector to one context so
// cancelling it aborts the in-flight request.
type contextTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.WithContext(t.ctx))
}

// Fetch visits url once and returns the body of the final response
func (f *Fetcher) Fetch(ctx context.Context, url string, opts domain.FetchOptions) (*interfaces.FetchResponse, error) {
	start := time.Now()

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.MaxBodySize(f.maxBodySize),
		colly.AllowURLRevisit(),
		colly.Async(false),
	)
	c.WithTransport(&contextTransport{ctx: ctx, next: f.transport})
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			c.SetRequestTimeout(remaining)
		}
	}

	var (
		result   *interfaces.FetchResponse
		fetchErr error
	)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range opts.Headers {
			r.Headers.Set(k, v)
		}
	})

	c.OnResponse(func(r *colly.Response) {
		result = &interfaces.FetchResponse{
			Contents: string(r.Body),
			Headers:  interfaces.SelectHeaders(r.Headers.Get),
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		fetchErr = &coreerrors.FetchError{URL: url, StatusCode: status, Err: err}
	})

	if err := c.Visit(url); err != nil && fetchErr == nil {
		fetchErr = &coreerrors.FetchError{URL: url, Err: err}
	}

	if fetchErr != nil {
		if f.logger != nil {
			f.logger.Debug("Colly fetch failed", map[string]interface{}{
				"url":         url,
				"error":       fetchErr.Error(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		}
		return nil, fetchErr
	}

	if result == nil {
		return nil, &coreerrors.FetchError{URL: url, Message: "no response received"}
	}

	if f.logger != nil {
		f.logger.Debug("Colly fetch completed", map[string]interface{}{
			"url":         url,
			"bytes":       len(result.Contents),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return result, nil
}
