// Package main provides the entry point for the blueblaze-debug-log-file CLI.
package main

import (
	"fmt"
	"os"

	"github.com/blueblazeassociates/blueblaze-debug-log-file/cmd/blueblaze-debug-log-file/cmd"
	bberrors "github.com/blueblazeassociates/blueblaze-debug-log-file/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, bberrors.FormatForCLI(err))
		os.Exit(1)
	}
}
