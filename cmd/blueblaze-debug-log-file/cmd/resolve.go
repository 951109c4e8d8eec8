package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	bberrors "github.com/blueblazeassociates/blueblaze-debug-log-file/internal/errors"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/output"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/resolver"
)

// resolveReport is the JSON form of a dry-run.
type resolveReport struct {
	resolver.Decision
	Error   json.RawMessage `json:"error,omitempty"`
	Warning json.RawMessage `json:"warning,omitempty"`
}

func newResolveCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Show where logging would go, without applying it",
		Long: `Run the resolution chain for path (or the configured log_file) and
print the decision. Nothing is opened or written.`,
		Example: `  # Resolve the configured path
  blueblaze-debug-log-file resolve

  # Resolve a specific path as JSON
  blueblaze-debug-log-file resolve /var/log/site --json`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{setupAnnotation: setupConfig},
		RunE: func(cmd *cobra.Command, args []string) error {
			requested := a.cfg.LogFile
			if len(args) == 1 {
				requested = args[0]
			}
			return runResolve(cmd, a, requested, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the decision as JSON")

	return cmd
}

func runResolve(cmd *cobra.Command, a *app, requested string, jsonOutput bool) error {
	d, err := a.newResolver().Resolve(requested)
	note := d.Note()

	if jsonOutput {
		report := resolveReport{Decision: d}
		var jerr error
		if err != nil {
			if report.Error, jerr = bberrors.FormatJSON(err); jerr != nil {
				return fmt.Errorf("failed to marshal error: %w", jerr)
			}
		}
		if note != nil {
			if report.Warning, jerr = bberrors.FormatJSON(note); jerr != nil {
				return fmt.Errorf("failed to marshal warning: %w", jerr)
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
		return err
	}

	out := output.New(cmd.OutOrStdout())
	switch {
	case err != nil:
		out.Error("Log path would not be applied")
	case bberrors.IsInfo(note):
		out.Warningf("Target type is uncertain, would apply as given: %s", d.Path)
	default:
		out.Successf("Logging would go to %s", d.Path)
	}

	const width = 9
	if d.Selected != "" {
		source := "requested"
		if d.FromFallback {
			source = resolver.FallbackName
		}
		out.Field("selected", width, d.Selected)
		out.Field("source", width, source)
	}
	if d.Symlink {
		out.Field("symlink", width, "-> "+d.Resolved)
	}
	if d.Resolved != "" {
		out.Field("kind", width, d.Kind.String())
	}
	if note != nil {
		out.Field("code", width, bberrors.GetCode(note))
	}

	return err
}
