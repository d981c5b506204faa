// ABOUTME: Entry point for the linkmeta command line tool
// ABOUTME: Delegates to internal/cli and exits with its status code

package main

import (
	"os"

	"linkmeta-api/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
