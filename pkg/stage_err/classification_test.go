package stage_err

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifiedErrorExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category ErrorCategory
		want     int
	}{
		{"system", CategorySystem, 1},
		{"validation", CategoryValidation, 2},
		{"user interrupt", CategoryUser, 130},
		{"internal", CategoryInternal, 3},
		{"dependency", CategoryDependency, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ce := &ClassifiedError{Category: tt.category, Message: "boom"}
			if got := ce.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassifiedErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("stat requirements.txt: no such file or directory")
	err := NewValidationError("requirements manifest not found", cause,
		"Run from the backend checkout",
		"Or pass --requirements")

	msg := err.Error()
	if !strings.Contains(msg, "requirements manifest not found") {
		t.Errorf("message missing headline: %q", msg)
	}
	if !strings.Contains(msg, "Cause:") {
		t.Errorf("message missing cause: %q", msg)
	}
	if !strings.Contains(msg, "1. Run from the backend checkout") {
		t.Errorf("message missing numbered remediation: %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be unwrappable")
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	if got := ExitCodeFor(nil); got != 0 {
		t.Errorf("ExitCodeFor(nil) = %d, want 0", got)
	}
	if got := ExitCodeFor(errors.New("boom")); got != 1 {
		t.Errorf("ExitCodeFor(plain) = %d, want 1", got)
	}
	ve := NewValidationError("bad flag", nil)
	if got := ExitCodeFor(ve); got != 2 {
		t.Errorf("ExitCodeFor(validation) = %d, want 2", got)
	}
	interrupted := fmt.Errorf("build step: %w", context.Canceled)
	if got := ExitCodeFor(interrupted); got != 130 {
		t.Errorf("ExitCodeFor(interrupted) = %d, want 130", got)
	}
}
