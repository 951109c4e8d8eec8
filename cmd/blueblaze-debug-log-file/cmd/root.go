// Package cmd provides the CLI commands for blueblaze-debug-log-file.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/config"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/logging"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/resolver"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/pkg/version"
)

// setupAnnotation controls how much of the startup sequence a command needs.
const setupAnnotation = "setup"

const (
	// setupNone skips config loading and log resolution.
	setupNone = "none"
	// setupConfig loads config but leaves the log destination alone.
	setupConfig = "config"
)

// app is the state shared by all commands of one invocation.
type app struct {
	// Flags
	configPath string
	logFile    string
	logLevel   string
	logFormat  string
	debug      bool

	cfg  *config.Config
	dest *logging.Destination
	diag *logging.Diagnostics
}

// NewRootCmd creates the root command for the blueblaze-debug-log-file CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "Resolve and apply the debug log destination",
		Long: `blueblaze-debug-log-file decides where the process error log goes.

The requested path may be a directory (debug.log is created inside it),
a file, a symlink to either, or a path that does not exist yet. When no
path is requested, BBA_WP__DEBUG_LOG_FILE is used instead. Anything
that cannot be written leaves logging on stderr.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.teardown()
		},
	}

	cmd.SetVersionTemplate(version.Name + " version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file (overrides the user config)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Requested log path (directory, file, or symlink)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Print debug diagnostics while resolving the log path")

	cmd.AddCommand(newResolveCmd(a))
	cmd.AddCommand(newApplyCmd(a))
	cmd.AddCommand(newLogsCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads configuration, resolves the log destination, and installs
// the host logger, stopping early when the command asks for less.
func (a *app) setup(cmd *cobra.Command) error {
	mode := cmd.Annotations[setupAnnotation]
	if mode == setupNone || skipsSetup(cmd) {
		return nil
	}

	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	a.dest = logging.NewDestination(cmd.ErrOrStderr())
	a.diag = logging.NewDiagnostics(cmd.ErrOrStderr(), a.cfg.Debug)

	if mode == setupConfig {
		return nil
	}

	a.apply(a.cfg.LogFile)
	return nil
}

// skipsSetup reports commands that only print help: the bare root and
// cobra's generated help command.
func skipsSetup(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "help"
}

// loadConfig loads the layered config and applies flag overrides on top.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

// newResolver builds a resolver over the app's destination and diagnostics.
func (a *app) newResolver() *resolver.Resolver {
	return resolver.New(a.dest, a.diag, resolver.WithFallback(a.cfg.Fallback))
}

// apply resolves requested onto the destination and installs the host logger.
func (a *app) apply(requested string) {
	a.newResolver().ResolveAndApply(requested)

	logger := logging.Setup(logging.Config{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
	}, a.dest)
	slog.SetDefault(logger)

	slog.Debug("log destination applied", slog.String("path", a.dest.Path()))
}

func (a *app) teardown() error {
	if a.dest == nil {
		return nil
	}
	if err := a.dest.Close(); err != nil {
		return fmt.Errorf("failed to close log destination: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
