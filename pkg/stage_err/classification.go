// pkg/stage_err/classification.go
//
// Error classification with proper exit codes, extending the UserError
// infrastructure.

package stage_err

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling.
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem/package-manager failures (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - bad flags, missing manifest (exit 2)
	CategoryValidation
	// CategoryUser - operator cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - bugs in stagehand itself (exit 3)
	CategoryInternal
	// CategoryDependency - required tool missing from the host (exit 1)
	CategoryDependency
)

// ClassifiedError wraps an error with category and remediation info.
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

func (e *ClassifiedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category.
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryUser:
		return 130
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// NewValidationError builds a CategoryValidation error with remediation
// steps.
func NewValidationError(message string, cause error, remediation ...string) *ClassifiedError {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewDependencyError builds a CategoryDependency error with remediation
// steps.
func NewDependencyError(message string, cause error, remediation ...string) *ClassifiedError {
	return &ClassifiedError{
		Category:    CategoryDependency,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// ExitCodeFor resolves the process exit code for any error.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.ExitCode()
	}
	// A cancelled step means the operator interrupted the run.
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}
