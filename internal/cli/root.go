// ABOUTME: Root command of the linkmeta CLI
// ABOUTME: Wires the fetch, batch and extract subcommands and maps failures to exit codes

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"linkmeta-api/linkmeta"
	"linkmeta-api/pkg/config"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitUsageError   = 2
	ExitInvalidURL   = 10
	ExitFetchFailed  = 11
	ExitConfigError  = 12
	ExitPartialBatch = 13
)

// errPartialBatch reports that at least one URL of a batch failed
var errPartialBatch = errors.New("one or more URLs failed")

// usageError marks argument and flag problems
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// ExitCodeForError maps a command error to a process exit code
func ExitCodeForError(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ue):
		return ExitUsageError
	case errors.Is(err, errPartialBatch):
		return ExitPartialBatch
	case linkmeta.IsInvalidURL(err):
		return ExitInvalidURL
	case linkmeta.IsFetchError(err), linkmeta.IsUpstreamPayloadError(err):
		return ExitFetchFailed
	case linkmeta.IsConfigurationError(err):
		return ExitConfigError
	default:
		return ExitError
	}
}

// NewRootCmd builds the command tree writing results to out and diagnostics to errOut
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "linkmeta",
		Short: "Extract standard, Open Graph and Twitter metadata from web pages",
		Long: `linkmeta fetches a page and prints its metadata as JSON.

Meta tags are grouped into standard, og, twitter and (with --all-meta) other.
Open Graph and Twitter keys are camelCased: og:site_name becomes siteName.

Settings are read from the environment and an optional .env file:
  FETCH_MODE        direct, relay or colly (default direct)
  FETCH_TIMEOUT_MS  default fetch timeout (default 5000)
  RELAY_URL         CORS relay used in relay mode
  USER_AGENT        User-Agent sent to target sites

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error
  10 - Invalid URL
  11 - Fetch failed
  12 - Invalid configuration
  13 - Some batch URLs failed`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	root.PersistentFlags().BoolP("verbose", "v", false, "Log fetch details to stderr")
	root.PersistentFlags().Bool("compact", false, "Print JSON on a single line")
	root.PersistentFlags().Bool("flat", false, "Print fetch and extract results as namespace<TAB>key<TAB>value lines")

	root.AddCommand(newFetchCmd(), newBatchCmd(), newExtractCmd())
	return root
}

// Execute runs the CLI against the process arguments
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return ExitCodeForError(err)
}

// exactArgs wraps cobra.ExactArgs so argument errors map to ExitUsageError
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

// writeJSON prints v honoring the --compact flag
func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if compact, _ := cmd.Flags().GetBool("compact"); !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// writeResult prints a single result as JSON, or as tab-separated records with --flat
func writeResult(cmd *cobra.Command, result *linkmeta.Result) error {
	if flat, _ := cmd.Flags().GetBool("flat"); !flat {
		return writeJSON(cmd, result)
	}
	w := cmd.OutOrStdout()
	for _, rec := range linkmeta.Records(result) {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Namespace, rec.Key, flatValue(rec.Value)); err != nil {
			return err
		}
	}
	return nil
}

// flatValue keeps a value on one line
func flatValue(v string) string {
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(v)
}

// loadConfig reads the environment and an optional .env file
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, linkmeta.NewError(linkmeta.ErrorTypeConfiguration, "failed to load configuration").WithCause(err)
	}
	return cfg, nil
}
