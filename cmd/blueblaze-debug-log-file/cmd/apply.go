package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/output"
)

func newApplyCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "apply [path]",
		Short: "Resolve the log path, apply it, and write a test record",
		Long: `Resolve path (or the configured log_file), point the process logger at
the result, and write one record through it. Diagnostics go to stderr.`,
		Example: `  # Apply a directory; records go to /var/log/site/debug.log
  blueblaze-debug-log-file apply /var/log/site

  # Show resolver debug diagnostics
  blueblaze-debug-log-file apply /var/log/site --debug`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{setupAnnotation: setupConfig},
		RunE: func(cmd *cobra.Command, args []string) error {
			requested := a.cfg.LogFile
			if len(args) == 1 {
				requested = args[0]
			}
			return runApply(cmd, a, requested, message)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "log destination check", "Message of the test record")

	return cmd
}

func runApply(cmd *cobra.Command, a *app, requested, message string) error {
	a.apply(requested)

	slog.Error(message, slog.String("requested", requested))
	if err := a.dest.Sync(); err != nil {
		slog.Warn("failed to sync log destination", slog.String("error", err.Error()))
	}

	out := output.New(cmd.OutOrStdout())
	if path := a.dest.Path(); path != "" {
		out.Successf("Logging to %s", path)
	} else {
		out.Warning("Log path not applied, logging to stderr")
	}
	return nil
}
