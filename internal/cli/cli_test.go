package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkmeta-api/linkmeta"
)

const testPage = `<html><head>
<title>Fallback Title</title>
<meta name="description" content="A page">
<meta property="og:site_name" content="Example">
<meta name="twitter:card" content="summary">
<link rel="icon" href="/favicon.ico">
</head><body></body></html>`

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FETCH_MODE", "direct")
	t.Setenv("FETCH_TIMEOUT_MS", "2000")

	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func decodeResult(t *testing.T, out string) linkmeta.Result {
	t.Helper()
	var result linkmeta.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestExtract_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(testPage), 0o644))

	out, _, err := runCLI(t, "", "extract", path, "--base", "https://example.com/post")
	require.NoError(t, err)

	result := decodeResult(t, out)
	assert.Equal(t, "Fallback Title", result.Standard["title"])
	assert.Equal(t, "A page", result.Standard["description"])
	assert.Equal(t, "Example", result.OG["siteName"])
	assert.Equal(t, "summary", result.Twitter["card"])
	assert.Equal(t, "https://example.com/favicon.ico", result.Standard["favicon"])
	assert.Nil(t, result.HTML)
}

func TestExtract_FromStdin(t *testing.T) {
	out, _, err := runCLI(t, testPage, "extract", "-", "--html", "--compact")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out), "\n")+1, "compact output is one line")
	result := decodeResult(t, out)
	require.NotNil(t, result.HTML)
	assert.Equal(t, testPage, *result.HTML)
}

func TestExtract_Flat(t *testing.T) {
	out, _, err := runCLI(t, testPage, "extract", "--flat", "--base", "https://example.com/post")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"standard\tdescription\tA page",
		"standard\tfavicon\thttps://example.com/favicon.ico",
		"standard\ttitle\tFallback Title",
		"og\tsiteName\tExample",
		"twitter\tcard\tsummary",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestFlatValue(t *testing.T) {
	assert.Equal(t, "two lines and tab", flatValue("two\nlines and\ttab"))
}

func TestExtract_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "extract", filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.Equal(t, ExitError, ExitCodeForError(err))
}

func TestFetch(t *testing.T) {
	var gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, testPage)
	}))
	defer server.Close()

	out, _, err := runCLI(t, "", "fetch", server.URL, "--response-headers", "-H", "Accept-Language: de")
	require.NoError(t, err)

	result := decodeResult(t, out)
	assert.Equal(t, "Fallback Title", result.Standard["title"])
	assert.Equal(t, "text/html", result.Headers["content-type"])
	assert.Equal(t, "de", gotLang)
}

func TestFetch_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"invalid url", []string{"fetch", "not a url"}, ExitInvalidURL},
		{"not found", []string{"fetch", server.URL}, ExitFetchFailed},
		{"missing argument", []string{"fetch"}, ExitUsageError},
		{"too many arguments", []string{"fetch", "https://a.example", "https://b.example"}, ExitUsageError},
		{"unknown flag", []string{"fetch", server.URL, "--nope"}, ExitUsageError},
		{"bad header", []string{"fetch", server.URL, "-H", "novalue"}, ExitUsageError},
		{"bad mode", []string{"fetch", server.URL, "--mode", "carrier-pigeon"}, ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, ExitCodeForError(err))
		})
	}
}

func TestBatch_PartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, testPage)
	}))
	defer server.Close()

	out, _, err := runCLI(t, "", "batch", server.URL+"/ok", server.URL+"/missing")
	require.Error(t, err)
	assert.Equal(t, ExitPartialBatch, ExitCodeForError(err))

	var body struct {
		Results []linkmeta.BatchItem `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, server.URL+"/ok", body.Results[0].URL)
	require.NotNil(t, body.Results[0].Metadata)
	assert.Equal(t, "Fallback Title", body.Results[0].Metadata.Standard["title"])
	assert.Equal(t, server.URL+"/missing", body.Results[1].URL)
	assert.Contains(t, body.Results[1].Error, "Failed to fetch metadata:")
}

func TestBatch_RequiresURLs(t *testing.T) {
	_, _, err := runCLI(t, "", "batch")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCodeForError(err))
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &usageError{errors.New("bad flag")}, ExitUsageError},
		{"partial batch", errPartialBatch, ExitPartialBatch},
		{"configuration", linkmeta.NewError(linkmeta.ErrorTypeConfiguration, "bad"), ExitConfigError},
		{"generic", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders([]string{"Accept-Language: de", "X-Empty:", "Cookie: a=b: c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Accept-Language": "de",
		"X-Empty":         "",
		"Cookie":          "a=b: c",
	}, headers)

	_, err = parseHeaders([]string{": value"})
	assert.Error(t, err)
}
