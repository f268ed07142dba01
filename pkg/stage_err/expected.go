// pkg/stage_err/expected.go
//
// Distinguishes expected (user/environment) failures from stagehand bugs so
// the CLI can exit quietly for the former and loudly for the latter.

package stage_err

import (
	"context"
	"errors"
)

// UserError marks a failure caused by the operator or the host environment
// rather than by stagehand itself: missing manifest, unsupported distro,
// declined sudo. These are reported without stack traces.
type UserError struct {
	Cause error
}

func (e *UserError) Error() string {
	if e.Cause == nil {
		return "user error"
	}
	return e.Cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewExpectedError wraps err as a UserError. Returns nil for nil.
func NewExpectedError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return &UserError{Cause: err}
}

// IsExpectedUserError reports whether err (anywhere in its chain) is a
// UserError.
func IsExpectedUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
