package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("habit not found"), "Error: habit not found"},
		{"wrapped error", fmt.Errorf("load habits: %w", errors.New("permission denied")), "Error: load habits: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("STARTRACKER_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "STARTRACKER_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	e, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if e.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", e.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: test error") {
		t.Errorf("stderr = %q, want it to contain %q", stderr.String(), "Error: test error")
	}
}

func TestFatalNilError(t *testing.T) {
	Fatal(nil)
}
