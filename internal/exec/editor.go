package exec

import "os"

// commonEditors are probed, in order, when no editor is configured in the
// environment. Each is on the allow-list and supports being exec'd with a
// single file-path argument.
var commonEditors = []string{"vim", "nano", "vi", "emacs"}

// DefaultEditor returns the user's preferred terminal editor: $EDITOR, then
// $VISUAL, then the first common editor found on PATH via a status-only
// "which" probe. Falls back to vi, which is present on any Unix system.
func DefaultEditor(engine *Engine) string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	for _, editor := range commonEditors {
		ok, err := engine.ExecuteStatus(NewCommand("which").Arg(editor).WithMode(StatusOnly))
		if err == nil && ok {
			return editor
		}
	}

	return "vi"
}
