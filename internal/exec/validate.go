package exec

import "strings"

// allowedPrograms is the fixed allow-list consulted before any process is
// spawned: build and package-manager tools, the version-control tool, shell
// interpreters for shell-indirection mode, and the interactive editors.
// Not user-editable at runtime.
var allowedPrograms = []string{
	"cargo", "rustc", "rustfmt", "clippy-driver",
	"go", "gofmt",
	"bun", "npm", "node", "npx",
	"git",
	"make", "cmake",
	"python", "python3",
	"sh", "bash",
	"which",
	"vim", "nano", "vi", "emacs",
}

// shellMetacharacters are rejected in shell command text when the validator
// is not operating under the trusted-config-source policy.
var shellMetacharacters = []string{"&&", "||", "|", ";", ">", "<", "`", "$("}

// Validator accepts or rejects a CommandSpec before any process is spawned.
// Validation is a pure predicate: it never has side effects and never spawns
// anything.
//
// TrustedConfigSource encodes the security trade-off in one auditable place:
// command text originates from developer-authored project configuration,
// never from uncontrolled runtime input, so shell metacharacters (pipes,
// chaining, redirection) are permitted in shell mode. The allow-list still
// applies to the first token actually executed, after stripping a leading
// "cd <dir> &&" prefix. Set TrustedConfigSource to false to reject
// metacharacters outright.
type Validator struct {
	TrustedConfigSource bool

	allowed map[string]struct{}
}

// NewValidator creates a validator with the fixed allow-list and the
// trusted-config-source policy enabled.
func NewValidator() *Validator {
	allowed := make(map[string]struct{}, len(allowedPrograms))
	for _, p := range allowedPrograms {
		allowed[p] = struct{}{}
	}
	return &Validator{
		TrustedConfigSource: true,
		allowed:             allowed,
	}
}

// Validate checks a CommandSpec against the security policy. It returns nil
// when the spec may be executed, ErrEmptyCommand or a NotWhitelistedError
// otherwise.
func (v *Validator) Validate(spec *CommandSpec) error {
	if spec == nil || strings.TrimSpace(spec.program) == "" {
		return ErrEmptyCommand
	}

	if _, ok := v.allowed[spec.program]; !ok {
		return &NotWhitelistedError{Program: spec.program}
	}

	if spec.isShell() {
		return v.validateShellText(spec.ShellText())
	}

	return nil
}

// validateShellText checks the command string passed to "sh -c".
func (v *Validator) validateShellText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyCommand
	}

	if !v.TrustedConfigSource {
		for _, meta := range shellMetacharacters {
			if strings.Contains(trimmed, meta) {
				return &NotWhitelistedError{Program: trimmed}
			}
		}
	}

	first := firstExecutedToken(trimmed)
	if first == "" {
		return ErrEmptyCommand
	}
	if _, ok := v.allowed[first]; !ok {
		return &NotWhitelistedError{Program: first}
	}

	return nil
}

// firstExecutedToken returns the program that actually runs first in a shell
// command, after stripping one leading "cd <dir> &&" prefix. The cd path may
// contain multiple segments.
func firstExecutedToken(text string) string {
	if strings.HasPrefix(text, "cd ") {
		if idx := strings.Index(text, "&&"); idx >= 0 {
			text = strings.TrimSpace(text[idx+2:])
		}
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
