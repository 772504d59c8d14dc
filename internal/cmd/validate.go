package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcus/devdeck/internal/category"
	"github.com/marcus/devdeck/internal/exec"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <command-text>...",
		Short: "Check command text against the security policy",
		Long: `Check whether command text would be accepted for execution, without
running anything. Prints the verdict and the category each command would
be logged under.

Examples:
  devdeck validate "npm run build"
  devdeck validate "cd frontend && npm test" "git status"`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateCommand,
	}
}

// validateCommand implements the validate command logic
func validateCommand(cmd *cobra.Command, args []string) error {
	validator := exec.NewValidator()
	out := cmd.OutOrStdout()

	failures := 0
	for _, text := range args {
		spec := exec.Shell(text)
		if err := validator.Validate(spec); err != nil {
			fmt.Fprintf(out, "%s  %s (%v)\n", color.RedString("rejected"), text, err)
			failures++
			continue
		}
		cat := category.Categorize(text)
		fmt.Fprintf(out, "%s  %s [%s]\n", color.GreenString("ok      "), text, cat)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d commands rejected", failures, len(args))
	}
	return nil
}
