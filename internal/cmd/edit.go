package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/devdeck/internal/app"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a project file in your editor",
		Long: `Open a file in the editor selected from $EDITOR, $VISUAL, or the first
installed editor from the built-in list. Defaults to the project's
devdeck.yaml so command declarations are one keystroke away.`,
		Args: cobra.MaximumNArgs(1),
		RunE: editCommand,
	}
}

// editCommand implements the edit command logic
func editCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadGlobalConfig(cmd)
	if err != nil {
		return err
	}
	log := newConsoleLogger(cmd, cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	file := "devdeck.yaml"
	if len(args) == 1 {
		file = args[0]
	}

	runner := app.NewRunner(cfg, log)
	defer runner.Close()

	return runner.EditFile(cwd, file)
}
