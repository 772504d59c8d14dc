package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcus/devdeck/internal/config"
	"github.com/marcus/devdeck/internal/history"
)

// NewHistoryCommand creates the history command and its subcommands
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past command executions",
		Long: `Browse the command execution history recorded in the devdeck database.

Without a subcommand the most recent executions are listed.`,
		Args: cobra.NoArgs,
		RunE: historyListCommand,
	}

	cmd.PersistentFlags().String("project", "", "Filter to one project by name")
	cmd.Flags().Int("limit", 20, "Maximum number of executions to list")

	cmd.AddCommand(NewHistoryStatsCommand())
	cmd.AddCommand(NewHistoryPruneCommand())

	return cmd
}

// NewHistoryStatsCommand creates the history stats subcommand
func NewHistoryStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated statistics per command category",
		Args:  cobra.NoArgs,
		RunE:  historyStatsCommand,
	}
}

// NewHistoryPruneCommand creates the history prune subcommand
func NewHistoryPruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete history older than the configured retention",
		Args:  cobra.NoArgs,
		RunE:  historyPruneCommand,
	}
}

// openHistoryStore loads config and opens the history database.
func openHistoryStore(cmd *cobra.Command) (*history.Store, *config.Config, error) {
	cfg, err := loadGlobalConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil, fmt.Errorf("history is disabled in the configuration")
	}

	dbPath := cfg.History.DBPath
	if dbPath == "" {
		home, err := config.DevdeckHome()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to locate devdeck home: %w", err)
		}
		dbPath = filepath.Join(home, "history.db")
	} else {
		dbPath = config.ExpandTilde(dbPath)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return store, cfg, nil
}

// historyListCommand implements the history list logic
func historyListCommand(cmd *cobra.Command, args []string) error {
	store, _, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	projectName, _ := cmd.Flags().GetString("project")
	limit, _ := cmd.Flags().GetInt("limit")

	executions, err := store.Recent(cmd.Context(), projectName, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(executions) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}

	for _, exec := range executions {
		verdict := color.GreenString("ok")
		if !exec.Success {
			verdict = color.RedString(fmt.Sprintf("exit %d", exec.ExitCode))
		}
		fmt.Fprintf(out, "%s  %-8s %-5s  %-8s  %s\n",
			exec.StartedAt.Format("2006-01-02 15:04:05"),
			exec.Project,
			exec.Category,
			verdict,
			exec.Command)
	}
	return nil
}

// historyStatsCommand implements the history stats logic
func historyStatsCommand(cmd *cobra.Command, args []string) error {
	store, _, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	projectName, _ := cmd.Flags().GetString("project")
	stats, err := store.Stats(cmd.Context(), projectName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}

	fmt.Fprintf(out, "%-8s %6s %9s %10s  %s\n", "category", "runs", "success", "avg", "last run")
	for _, cs := range stats {
		fmt.Fprintf(out, "%-8s %6d %8.0f%% %10s  %s\n",
			cs.Category,
			cs.Runs,
			cs.SuccessRate()*100,
			cs.AvgDuration.Round(time.Millisecond),
			cs.LastStartedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// historyPruneCommand implements the history prune logic
func historyPruneCommand(cmd *cobra.Command, args []string) error {
	store, cfg, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.Prune(cmd.Context(), cfg.History.KeepDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d executions older than %d days.\n", deleted, cfg.History.KeepDays)
	return nil
}
