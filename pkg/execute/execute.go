// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/kaleshlabs/stagehand/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Package execute runs external commands with structured logging. Shell
// execution is not supported; callers pass argv explicitly so nothing is ever
// interpreted by a shell.

// Run executes a command according to opts and returns captured output when
// opts.Capture is set.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	runCtx, span := telemetry.Start(runCtx, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	if opts.DryRun || DefaultDryRun {
		logger.Info("Dry run mode - command not executed", zap.String("command", cmdStr))
		return "", nil
	}

	logger.Info("Starting execution", zap.String("command", cmdStr))

	attempts := max(1, opts.Retries)
	var output string
	var err error

	attempted := 0
	for i := 1; i <= attempts; i++ {
		attempted = i
		cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
		if opts.Dir != "" {
			cmd.Dir = opts.Dir
		}
		if len(opts.Env) > 0 {
			cmd.Env = append(os.Environ(), opts.Env...)
		}

		var buf bytes.Buffer
		if opts.Stream {
			cmd.Stdout = io.MultiWriter(os.Stderr, &buf)
			cmd.Stderr = io.MultiWriter(os.Stderr, &buf)
		} else {
			cmd.Stdout = &buf
			cmd.Stderr = &buf
		}

		err = cmd.Run()
		output = buf.String()

		if err == nil {
			logger.Info("Execution succeeded", zap.String("command", cmdStr))
			break
		}

		// A killed child usually reports "signal: killed", not the context
		// error. Fold the context error in so callers can tell an operator
		// interrupt or timeout from a genuine command failure.
		if ctxErr := runCtx.Err(); ctxErr != nil {
			err = cerr.CombineErrors(ctxErr, err)
		}

		summary := stage_err.ExtractSummary(ctx, output, 2)
		span.RecordError(err)
		logger.Error("Execution failed", zap.Error(err),
			zap.Int("attempt", i),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
		)

		// Retrying against a cancelled or expired context cannot succeed.
		if runCtx.Err() != nil {
			break
		}
		if i < attempts {
			time.Sleep(opts.Delay)
		}
	}

	if err != nil {
		if attempted > 1 {
			return output, cerr.Wrapf(err, "command failed after %d attempts", attempted)
		}
		return output, cerr.Wrapf(err, "command %q failed", opts.Command)
	}

	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// RunSimple executes a command with default options, streaming its output to
// the terminal.
func RunSimple(ctx context.Context, cmd string, args ...string) error {
	_, err := Run(ctx, Options{
		Command: cmd,
		Args:    args,
		Stream:  true,
	})
	return err
}
