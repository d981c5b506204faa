// ABOUTME: Fetcher factory selecting the page retrieval strategy from configuration
// ABOUTME: Supports direct HTTP, a CORS relay and a colly collector

package fetcher

import (
	"fmt"
	"net/http"
	"strings"

	"linkmeta-api/core/interfaces"
	"linkmeta-api/infrastructure/fetcher/collyfetch"
	"linkmeta-api/infrastructure/fetcher/direct"
	"linkmeta-api/infrastructure/fetcher/relay"
)

// Mode names a fetch strategy
type Mode string

const (
	ModeDirect Mode = "direct"
	ModeRelay  Mode = "relay"
	ModeColly  Mode = "colly"
)

// ParseMode normalizes s into a Mode. An empty string selects ModeDirect.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDirect, nil
	case ModeDirect, ModeRelay, ModeColly:
		return m, nil
	default:
		return "", fmt.Errorf("unknown fetch mode %q (want direct, relay or colly)", s)
	}
}

// Config holds the settings shared by all fetchers
type Config struct {
	Mode         Mode
	RelayURL     string
	UserAgent    string
	MaxBodyBytes int64

	// Transport is only used by the colly fetcher; the others go through the HTTP client
	Transport http.RoundTripper
}

// New builds the fetcher for cfg.Mode
func New(cfg Config, client interfaces.HTTPClient, logger interfaces.Logger) (interfaces.Fetcher, error) {
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeRelay:
		if client == nil {
			return nil, fmt.Errorf("relay fetcher requires an HTTP client")
		}
		// The relay wraps the page in JSON, so allow roughly twice the page limit
		return relay.New(client, logger, cfg.RelayURL, cfg.MaxBodyBytes*2), nil
	case ModeColly:
		return collyfetch.New(cfg.UserAgent, int(cfg.MaxBodyBytes), cfg.Transport, logger), nil
	default:
		if client == nil {
			return nil, fmt.Errorf("direct fetcher requires an HTTP client")
		}
		return direct.New(client, logger, cfg.MaxBodyBytes), nil
	}
}
