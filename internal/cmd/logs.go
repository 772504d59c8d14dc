package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/devdeck/internal/cmdlog"
)

// NewLogsCommand creates the logs command
func NewLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List recent command logs for the current project",
		Long: `List the newest command log files written under .devdeck/logs/commands/,
across all categories. Use --show to print the newest log instead of
listing.`,
		Args: cobra.NoArgs,
		RunE: logsCommand,
	}

	cmd.Flags().Int("limit", 10, "Maximum number of logs to list")
	cmd.Flags().Bool("show", false, "Print the newest log's contents")

	return cmd
}

// logsCommand implements the logs command logic
func logsCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries := cmdlog.Recent(cwd, limit)
	out := cmd.OutOrStdout()

	if len(entries) == 0 {
		fmt.Fprintln(out, "No command logs yet.")
		return nil
	}

	if show, _ := cmd.Flags().GetBool("show"); show {
		data, err := os.ReadFile(entries[0].Path)
		if err != nil {
			return fmt.Errorf("failed to read log: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %-5s  %s\n",
			entry.ModTime.Format("2006-01-02 15:04:05"), entry.Category, entry.Filename)
	}
	return nil
}
