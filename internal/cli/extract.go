// ABOUTME: extract command running the extractor on local HTML
// ABOUTME: Reads a file or stdin; nothing is fetched

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"linkmeta-api/linkmeta"
)

func newExtractCmd() *cobra.Command {
	var (
		baseURL string
		allMeta bool
		html    bool
	)

	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract metadata from local HTML",
		Long: `Extract metadata from an HTML file, or from stdin when the argument is "-"
or missing. --base resolves a relative favicon.

Examples:
  linkmeta extract page.html --base https://example.com/post
  curl -s https://go.dev/ | linkmeta extract --base https://go.dev/`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var opts []linkmeta.ExtractOption
			if allMeta {
				opts = append(opts, linkmeta.WithAllMeta())
			}
			if html {
				opts = append(opts, linkmeta.WithHTML())
			}
			return writeResult(cmd, linkmeta.Extract(markup, baseURL, opts...))
		},
	}

	cmd.Flags().StringVar(&baseURL, "base", "", "URL the HTML was served from")
	cmd.Flags().BoolVar(&allMeta, "all-meta", false, "Include unrecognized meta tags and link elements under other")
	cmd.Flags().BoolVar(&html, "html", false, "Include the input HTML in the output")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
