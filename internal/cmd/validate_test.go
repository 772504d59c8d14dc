package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func runValidate(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewValidateCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateAcceptsKnownCommand(t *testing.T) {
	output, err := runValidate(t, "npm run build")
	if err != nil {
		t.Fatalf("valid command should be accepted: %v", err)
	}
	if !strings.Contains(output, "ok") {
		t.Errorf("Expected ok verdict, got: %s", output)
	}
	if !strings.Contains(output, "[Build]") {
		t.Errorf("Expected Build category, got: %s", output)
	}
}

func TestValidateRejectsUnknownProgram(t *testing.T) {
	output, err := runValidate(t, "curl https://example.com")
	if err == nil {
		t.Fatal("unknown program should be rejected")
	}
	if !strings.Contains(output, "rejected") {
		t.Errorf("Expected rejected verdict, got: %s", output)
	}
}

func TestValidateChecksFirstTokenAfterCdPrefix(t *testing.T) {
	output, err := runValidate(t, "cd frontend && npm test")
	if err != nil {
		t.Fatalf("cd-prefixed command should be accepted: %v", err)
	}
	if !strings.Contains(output, "[Test]") {
		t.Errorf("Expected Test category, got: %s", output)
	}
}

func TestValidateMixedVerdictsFail(t *testing.T) {
	_, err := runValidate(t, "git status", "rm -rf /")
	if err == nil {
		t.Fatal("one rejected command should fail the whole invocation")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("Expected rejection count in error, got: %v", err)
	}
}
