package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcus/devdeck/internal/buildstate"
	"github.com/marcus/devdeck/internal/exec"
	"github.com/marcus/devdeck/internal/project"
)

// NewProjectsCommand creates the projects command
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List discovered projects",
		Long: `List every project discovered in the workspace and the registered
directories, with its git branch, working tree state and last build outcome.`,
		Args: cobra.NoArgs,
		RunE: projectsCommand,
	}

	cmd.Flags().Bool("commands", false, "Also list each project's declared commands")

	return cmd
}

// projectsCommand implements the projects command logic
func projectsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadGlobalConfig(cmd)
	if err != nil {
		return err
	}
	log := newConsoleLogger(cmd, cfg)

	projects := project.Discover(cfg, log)
	out := cmd.OutOrStdout()

	if len(projects) == 0 {
		fmt.Fprintf(out, "No projects found. Add a %s file to a project under %s.\n",
			"devdeck.yaml", cfg.Workspace.Path)
		return nil
	}

	showCommands, _ := cmd.Flags().GetBool("commands")
	engine := exec.NewEngine()

	for _, p := range projects {
		git := project.ReadGitStatus(engine, p.Path)
		fmt.Fprintf(out, "%s  %s\n", color.New(color.Bold).Sprint(p.Name()), p.Path)
		fmt.Fprintf(out, "  git:   %s\n", git.Summary())
		fmt.Fprintf(out, "  build: %s\n", buildSummary(p.BuildState()))

		if showCommands {
			for _, c := range p.Commands() {
				fmt.Fprintf(out, "  cmd:   %-12s %s\n", c.Name, c.Text)
			}
		}
	}
	return nil
}

// buildSummary renders the last build record for a project row.
func buildSummary(record *buildstate.Record) string {
	if record == nil {
		return "never built"
	}

	when := time.Unix(record.Timestamp, 0).Format("2006-01-02 15:04")
	switch record.Status {
	case buildstate.StatusSuccess:
		return fmt.Sprintf("%s (%s, %s)", color.GreenString("success"), record.Task, when)
	case buildstate.StatusFailed:
		return fmt.Sprintf("%s (%s, %s)", color.RedString("failed"), record.Task, when)
	case buildstate.StatusRunning:
		return fmt.Sprintf("%s (%s, %s)", color.YellowString("running"), record.Task, when)
	default:
		return string(record.Status)
	}
}
