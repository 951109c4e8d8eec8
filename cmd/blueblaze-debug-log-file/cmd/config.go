package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blueblazeassociates/blueblaze-debug-log-file/configs"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/config"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user configuration",
		Long: `Manage the user configuration file.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/blueblaze/config.yaml)
  3. --config file
  4. Environment variables (BLUEBLAZE_*, BBA_WP__DEBUG_LOG_FILE)
  5. Command-line flags`,
		Example: `  # Create user config from template
  blueblaze-debug-log-file config init

  # Show effective configuration
  blueblaze-debug-log-file config show

  # Print user config file path
  blueblaze-debug-log-file config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create user configuration file",
		Long: `Create the user configuration file from a template at
~/.config/blueblaze/config.yaml (or $XDG_CONFIG_HOME/blueblaze/config.yaml).`,
		Example: `  # Create user config
  blueblaze-debug-log-file config init

  # Replace existing config, keeping a backup
  blueblaze-debug-log-file config init --force`,
		Annotations: map[string]string{setupAnnotation: setupNone},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration (a backup is kept)")

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the effective configuration after merging all sources.

Use --source to show only the user file or the hardcoded defaults.`,
		Example: `  # Show merged configuration
  blueblaze-debug-log-file config show

  # Show as JSON
  blueblaze-debug-log-file config show --json

  # Show only user config
  blueblaze-debug-log-file config show --source user`,
		Annotations: map[string]string{setupAnnotation: setupConfig},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, a, jsonOutput, source)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, defaults")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print user config file path",
		Long:        `Print the path to the user configuration file.`,
		Annotations: map[string]string{setupAnnotation: setupNone},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())

	configPath := config.GetUserConfigPath()
	configDir := config.GetUserConfigDir()

	var backupPath string
	if config.UserConfigExists() {
		if !force {
			out.Warning("User configuration already exists")
			out.Statusf("📁", "Location: %s", configPath)
			out.Newline()
			out.Status("💡", "Use --force to replace it (a backup is kept)")
			return nil
		}

		var err error
		backupPath, err = config.BackupUserConfig()
		if err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(configPath, []byte(configs.UserConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out.Success("Created user configuration")
	out.Statusf("📁", "Location: %s", configPath)
	if backupPath != "" {
		out.Statusf("💾", "Backup: %s", backupPath)
	}
	out.Newline()
	out.Status("📋", "Next steps:")
	out.Status("", "  1. Set log_file or debug_log_file")
	out.Status("", "  2. Run 'blueblaze-debug-log-file resolve' to check the result")

	return nil
}

func runConfigShow(cmd *cobra.Command, a *app, jsonOutput bool, source string) error {
	out := output.New(cmd.OutOrStdout())

	var cfg *config.Config
	var sourceDesc string

	switch source {
	case "merged":
		cfg = a.cfg
		sourceDesc = "merged (defaults + user + --config + env + flags)"

	case "user":
		configPath := config.GetUserConfigPath()
		userCfg, err := config.LoadUserConfig()
		if err != nil {
			return err
		}
		if userCfg == nil {
			out.Warning("No user configuration file found")
			out.Statusf("📁", "Expected at: %s", configPath)
			out.Status("💡", "Run 'blueblaze-debug-log-file config init' to create one")
			return nil
		}
		cfg = userCfg
		sourceDesc = fmt.Sprintf("user (%s)", configPath)

	case "defaults":
		cfg = config.NewConfig()
		sourceDesc = "defaults (hardcoded)"

	default:
		return fmt.Errorf("invalid source: %s (use: merged, user, defaults)", source)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	out.Statusf("📋", "Configuration source: %s", sourceDesc)
	out.Newline()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
