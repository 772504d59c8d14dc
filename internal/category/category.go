// Package category classifies raw command text into semantic buckets used
// for command filtering and log routing.
package category

import "strings"

// Category is the semantic bucket assigned to a command.
type Category int

const (
	// Build covers compilation, bundling, and development servers.
	Build Category = iota
	// Test covers test runs, specs, coverage, and benchmarks.
	Test
	// Lint covers formatting, linting, and type checking.
	Lint
	// Git covers commands whose first executed token is git.
	Git
	// Other is the fallback for anything unrecognized.
	Other
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case Build:
		return "Build"
	case Test:
		return "Test"
	case Lint:
		return "Lint"
	case Git:
		return "Git"
	default:
		return "Other"
	}
}

// LogDir returns the lowercase directory name used for this category's
// command logs.
func (c Category) LogDir() string {
	return strings.ToLower(c.String())
}

// LogDirs lists every category log directory name.
func LogDirs() []string {
	return []string{"build", "test", "lint", "git", "other"}
}

// Keyword sets checked in priority order: test, then build, then lint.
// First match wins, regardless of where the keyword appears in the text.
var (
	testKeywords  = []string{"test", "spec", "coverage", "bench"}
	buildKeywords = []string{"build", "compile", "bundle", "dev", "run", "start", "watch", "serve"}
	lintKeywords  = []string{"lint", "fmt", "format", "clippy", "check", "prettier", "eslint"}
)

// Categorize classifies a command string by keyword matching.
//
// Exactly one leading "cd <path> &&" prefix is stripped before matching, so
// commands like "cd frontend && npm run build" classify by the real command.
// The keyword rules run before the git-prefix rule, so a git-first chain
// that contains a keyword (e.g. "git pull && npm run build") classifies by
// the keyword; keyword-free git commands like "git status" are Git. The
// prefix is required: git appearing later in a chain never makes it Git.
//
// Known limitation: only the first cd prefix is stripped, and a git
// subcommand that happens to contain a keyword ("git checkout" matches
// "check") classifies by that keyword.
func Categorize(command string) Category {
	text := strings.ToLower(command)

	// Strip a single leading "cd <dir> &&" prefix.
	if strings.HasPrefix(strings.TrimSpace(text), "cd ") {
		if idx := strings.Index(text, " && "); idx >= 0 {
			text = text[idx+4:]
		}
	}

	switch {
	case containsAny(text, testKeywords):
		return Test
	case containsAny(text, buildKeywords):
		return Build
	case containsAny(text, lintKeywords):
		return Lint
	}

	if strings.HasPrefix(strings.TrimSpace(text), "git ") {
		return Git
	}

	return Other
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
