// pkg/execute/retry.go

package execute

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"go.uber.org/zap"
)

// RetryCommand retries execution with live output mirrored to the terminal.
func RetryCommand(ctx context.Context, logger *zap.Logger, maxAttempts int, delay time.Duration, name string, args ...string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var lastErr error
	for i := 1; i <= maxAttempts; i++ {
		logger.Info("Running command", zap.Int("attempt", i), zap.String("command", name), zap.String("args", joinArgs(args)))

		cmd := exec.CommandContext(ctx, name, args...)

		var buf bytes.Buffer
		cmd.Stdout = io.MultiWriter(os.Stderr, &buf)
		cmd.Stderr = io.MultiWriter(os.Stderr, &buf)

		err := cmd.Run()
		if err == nil {
			return nil
		}

		summary := stage_err.ExtractSummary(ctx, buf.String(), 2)
		lastErr = cerr.Wrapf(err, "attempt %d failed: %s", i, summary)
		logger.Warn("Command attempt failed", zap.Int("attempt", i), zap.Error(err), zap.String("summary", summary))

		// A cancelled context ends the run: the failure is the interrupt
		// or timeout, and further attempts cannot succeed.
		if ctx.Err() != nil {
			return cerr.CombineErrors(ctx.Err(), lastErr)
		}

		if i < maxAttempts {
			select {
			case <-ctx.Done():
				return cerr.CombineErrors(ctx.Err(), lastErr)
			case <-time.After(delay):
			}
		}
	}
	return cerr.Wrapf(lastErr, "all %d attempts failed", maxAttempts)
}
