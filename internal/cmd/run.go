package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcus/devdeck/internal/app"
	"github.com/marcus/devdeck/internal/config"
	"github.com/marcus/devdeck/internal/logger"
	"github.com/marcus/devdeck/internal/project"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <command-name>",
		Short: "Run a command declared by a project",
		Long: `Run one of the commands a project declares in its devdeck.yaml.

By default the project is the current directory. Use --project to run a
command of any discovered project by name instead.

The built-in git commands (git status, git diff, git pull) are always
available alongside the declared ones.

Examples:
  devdeck run build
  devdeck run test
  devdeck run "git status"
  devdeck run --project api lint
  devdeck run --raw "npm run build -- --watch=false"`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand,
	}

	cmd.Flags().String("project", "", "Run in the named discovered project instead of the current directory")
	cmd.Flags().Bool("raw", false, "Treat the argument as raw command text instead of a declared name")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadGlobalConfig(cmd)
	if err != nil {
		return err
	}

	log := newConsoleLogger(cmd, cfg)
	if home, err := config.DevdeckHome(); err == nil {
		if fileLog, err := logger.NewFileLogger(filepath.Join(home, "logs"), cfg.Logging.Level); err == nil {
			defer fileLog.Close()
			log = logger.Multi(log, fileLog)
		}
	}

	proj, err := resolveProject(cmd, cfg)
	if err != nil {
		return err
	}

	commandText, err := resolveCommandText(cmd, proj, args[0])
	if err != nil {
		return err
	}

	runner := app.NewRunner(cfg, log)
	defer runner.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running %s in %s\n", commandText, proj.Name())

	outcome, err := runner.Run(cmd.Context(), proj.Path, proj.Name(), commandText)
	if err != nil {
		return err
	}

	printOutcome(cmd, outcome)
	if !outcome.Result.Success {
		return fmt.Errorf("command failed with exit code %d", outcome.Result.ExitCode)
	}
	return nil
}

// resolveProject picks the target project: the named discovered project when
// --project is set, otherwise the current directory.
func resolveProject(cmd *cobra.Command, cfg *config.Config) (*project.Project, error) {
	name, _ := cmd.Flags().GetString("project")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		projectCfg, err := config.LoadProject(cwd)
		if err != nil {
			return nil, fmt.Errorf("no %s in %s (use --project to target a discovered project): %w",
				config.ProjectMarker, cwd, err)
		}
		return &project.Project{Path: cwd, Config: projectCfg}, nil
	}

	log := newConsoleLogger(cmd, cfg)
	for _, p := range project.Discover(cfg, log) {
		if p.Name() == name {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("no discovered project named %q", name)
}

// resolveCommandText maps a declared command name to its text, or passes the
// argument through when --raw is set.
func resolveCommandText(cmd *cobra.Command, proj *project.Project, arg string) (string, error) {
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		return arg, nil
	}

	var names []string
	for _, c := range proj.Commands() {
		if c.Name == arg {
			return c.Text, nil
		}
		names = append(names, c.Name)
	}
	return "", fmt.Errorf("project %s declares no command %q (available: %s)",
		proj.Name(), arg, strings.Join(names, ", "))
}

// printOutcome renders a settled command result.
func printOutcome(cmd *cobra.Command, outcome *app.Outcome) {
	out := cmd.OutOrStdout()
	result := outcome.Result

	verdict := color.New(color.FgGreen).Sprint("ok")
	if !result.Success {
		verdict = color.New(color.FgRed).Sprintf("failed (exit %d)", result.ExitCode)
	}
	fmt.Fprintf(out, "[%s] %s in %s\n", outcome.Category, verdict, result.Duration.Round(time.Millisecond))

	if stdout := strings.TrimSpace(result.Stdout); stdout != "" {
		fmt.Fprintln(out, stdout)
	}
	if !result.Success {
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			fmt.Fprintln(out, stderr)
		}
	}
	if outcome.LogPath != "" {
		fmt.Fprintf(out, "Log: %s\n", outcome.LogPath)
	}
}
