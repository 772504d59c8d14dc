// Package cmd defines the devdeck CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/devdeck/internal/config"
	"github.com/marcus/devdeck/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for devdeck
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devdeck",
		Short: "Project command launcher for your workstation",
		Long: `Devdeck discovers the projects in your workspace and runs the commands
they declare in their devdeck.yaml files.

Each project lists named commands (build, test, lint and so on). Devdeck
validates them against a fixed program allow-list, runs one at a time,
categorizes the output into per-category log files under .devdeck/, and
keeps a history of every run.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.devdeck/config.yaml)")
	cmd.PersistentFlags().Bool("verbose", false, "Show debug output")

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewProjectsCommand())
	cmd.AddCommand(NewLogsCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewEditCommand())

	return cmd
}

// loadGlobalConfig resolves the --config flag and loads the global
// configuration, falling back to defaults when no file exists.
func loadGlobalConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.GlobalConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
	}
	return config.Load(path)
}

// newConsoleLogger builds the console logger for a command invocation.
func newConsoleLogger(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	level := cfg.Logging.Level
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), level)
}
