// ABOUTME: fetch and batch commands retrieving pages and printing their metadata
// ABOUTME: Flags override the environment configuration for a single run

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"linkmeta-api/linkmeta"
)

// fetchFlags are shared by fetch and batch
type fetchFlags struct {
	allMeta         bool
	html            bool
	responseHeaders bool
	timeout         time.Duration
	headers         []string
	mode            string
	relayURL        string
	userAgent       string
	concurrency     int
}

func (f *fetchFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.allMeta, "all-meta", false, "Include unrecognized meta tags and link elements under other")
	flags.BoolVar(&f.html, "html", false, "Include the raw page HTML")
	flags.BoolVar(&f.responseHeaders, "response-headers", false, "Include content-type, content-length and last-modified")
	flags.DurationVar(&f.timeout, "timeout", 0, "Fetch timeout (default from FETCH_TIMEOUT_MS, else 5s)")
	flags.StringArrayVarP(&f.headers, "header", "H", nil, "Request header sent to the site, as 'Name: value' (repeatable)")
	flags.StringVar(&f.mode, "mode", "", "Fetch mode: direct, relay or colly (default from FETCH_MODE)")
	flags.StringVar(&f.relayURL, "relay-url", "", "CORS relay used in relay mode (default from RELAY_URL)")
	flags.StringVar(&f.userAgent, "user-agent", "", "User-Agent sent to the site (default from USER_AGENT)")
}

// extractOptions converts flags into per-call options
func (f *fetchFlags) extractOptions() ([]linkmeta.ExtractOption, error) {
	var opts []linkmeta.ExtractOption
	if f.allMeta {
		opts = append(opts, linkmeta.WithAllMeta())
	}
	if f.html {
		opts = append(opts, linkmeta.WithHTML())
	}
	if f.responseHeaders {
		opts = append(opts, linkmeta.WithResponseHeaders())
	}
	if f.timeout > 0 {
		opts = append(opts, linkmeta.WithTimeout(f.timeout))
	}
	if len(f.headers) > 0 {
		headers, err := parseHeaders(f.headers)
		if err != nil {
			return nil, err
		}
		opts = append(opts, linkmeta.WithHeaders(headers))
	}
	return opts, nil
}

// newClient builds a library client from the environment and flag overrides
func (f *fetchFlags) newClient(cmd *cobra.Command) (*linkmeta.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	mode := firstNonEmpty(f.mode, cfg.Fetch.Mode)
	options := []linkmeta.Option{
		linkmeta.WithFetchMode(mode),
		linkmeta.WithRelayURL(firstNonEmpty(f.relayURL, cfg.Fetch.RelayURL)),
		linkmeta.WithUserAgent(firstNonEmpty(f.userAgent, cfg.Fetch.UserAgent)),
		linkmeta.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes),
		linkmeta.WithDefaultTimeout(cfg.Fetch.Timeout),
	}
	if f.concurrency > 0 {
		options = append(options, linkmeta.WithBatchConcurrency(f.concurrency))
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger, err := linkmeta.DefaultLogger("debug", cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		options = append(options, linkmeta.WithLogger(logger))
	}

	return linkmeta.NewClient(options...)
}

func newFetchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a page and print its metadata",
		Long: `Fetch a page and print its metadata as JSON.

Examples:
  # Basic extraction
  linkmeta fetch https://go.dev/

  # Everything, through the CORS relay
  linkmeta fetch https://go.dev/ --all-meta --response-headers --mode relay

  # Ask for the German page
  linkmeta fetch https://example.com -H 'Accept-Language: de'`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.extractOptions()
			if err != nil {
				return err
			}
			client, err := flags.newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.FetchAndExtract(cmdContext(cmd), args[0], opts...)
			if err != nil {
				return err
			}
			return writeResult(cmd, result)
		},
	}
	flags.register(cmd)
	return cmd
}

func newBatchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "batch <url>...",
		Short: "Fetch several pages and print one result per URL",
		Long: `Fetch several pages concurrently. Results are printed in argument order as
{"results": [{"url", "metadata"} or {"url", "error"}]}. The exit code is 13
when any URL failed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return &usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.extractOptions()
			if err != nil {
				return err
			}
			client, err := flags.newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			items, err := client.FetchAndExtractBatch(cmdContext(cmd), args, opts...)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd, map[string]interface{}{"results": items}); err != nil {
				return err
			}
			for _, item := range items {
				if item.Error != "" {
					return errPartialBatch
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Pages fetched at once (default 5)")
	return cmd
}

// parseHeaders turns "Name: value" pairs into a header map
func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &usageError{fmt.Errorf("invalid header %q, want 'Name: value'", h)}
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
