// ABOUTME: URL helpers for validating request URLs and resolving relative references
// ABOUTME: Resolution never fails; unresolvable input is returned unchanged

package urls

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s is a well-formed absolute URL
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}

	// mailto:, data: and friends
	if u.Opaque != "" {
		return true
	}

	if u.Scheme == "file" {
		return u.Path != ""
	}

	return u.Host != ""
}

// ResolveURL resolves relative against base. If either side cannot be parsed,
// or base is not absolute, relative is returned as is.
func ResolveURL(relative, base string) string {
	if !IsValidURL(base) {
		return relative
	}

	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return relative
	}

	ref, err := url.Parse(strings.TrimSpace(relative))
	if err != nil {
		return relative
	}

	return baseURL.ResolveReference(ref).String()
}

// Host returns the host portion of a URL, or an empty string
func Host(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return u.Host
}
