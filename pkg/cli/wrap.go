// pkg/cli/wrap.go

package cli

import (
	"context"

	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/logger"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Wrap adapts a RuntimeContext-aware command body to cobra's RunE, adding
// panic recovery, lifecycle logging, signal-driven cancellation, and
// expected-error classification.
func Wrap(fn func(rc *stage_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.InitFallback()

		rc := stage_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		stage_io.LogRuntimeExecutionContext(rc)

		handler := NewSignalHandler(rc)
		defer handler.Stop()
		rc.Ctx = handler.Context()

		err = fn(rc, cmd, args)
		if err != nil && !stage_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
