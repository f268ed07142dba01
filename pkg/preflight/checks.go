// Package preflight provides host verification checks for the check command
// and for pre-build validation.
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Check represents a single verification step.
type Check struct {
	Name        string
	Description string
	Check       func(context.Context) error
	Required    bool
}

// CheckResult contains the outcome of one check.
type CheckResult struct {
	Name    string
	Passed  bool
	Error   error
	Warning string
}

// RunChecks executes all checks and returns the results. An error is
// returned when any required check fails; optional failures only warn.
func RunChecks(ctx context.Context, checks []Check) ([]CheckResult, error) {
	logger := otelzap.Ctx(ctx)

	logger.Info("Running host checks", zap.Int("total_checks", len(checks)))

	results := make([]CheckResult, 0, len(checks))
	criticalFailures := 0

	for _, check := range checks {
		logger.Debug("Running check", zap.String("check", check.Name))

		result := CheckResult{Name: check.Name}

		checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := check.Check(checkCtx)
		cancel()

		if err != nil {
			result.Error = err
			if check.Required {
				logger.Error("✗ Check failed (required)",
					zap.String("check", check.Name),
					zap.Error(err))
				criticalFailures++
			} else {
				logger.Warn("⚠ Check failed (optional)",
					zap.String("check", check.Name),
					zap.Error(err))
				result.Warning = err.Error()
			}
		} else {
			result.Passed = true
			logger.Info("✓ Check passed", zap.String("check", check.Name))
		}

		results = append(results, result)
	}

	if criticalFailures > 0 {
		return results, fmt.Errorf("%d required check(s) failed", criticalFailures)
	}

	logger.Info("All required checks passed")
	return results, nil
}

// CheckCommand verifies a binary resolves on PATH.
func CheckCommand(name, installHint string) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%s not found on PATH: %w\nFix: %s", name, err, installHint)
		}
		return nil
	}
}

// CheckCommandRuns verifies a binary executes successfully with args.
func CheckCommandRuns(name string, args ...string) func(context.Context) error {
	return func(ctx context.Context) error {
		out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("%s %v failed: %w\nOutput: %s", name, args, err, string(out))
		}
		return nil
	}
}

// CheckFileExists verifies a regular file exists at path.
func CheckFileExists(path, hint string) func(context.Context) error {
	return func(ctx context.Context) error {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%s: %w\nFix: %s", path, err, hint)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory, expected a file", path)
		}
		return nil
	}
}

// CheckDiskSpace verifies minimum free space on the root filesystem.
func CheckDiskSpace(minGB int) func(context.Context) error {
	return func(ctx context.Context) error {
		var stat syscall.Statfs_t
		if err := syscall.Statfs("/", &stat); err != nil {
			return fmt.Errorf("failed to check disk space: %w", err)
		}

		availableGB := (stat.Bavail * uint64(stat.Bsize)) / (1024 * 1024 * 1024)
		if availableGB < uint64(minGB) {
			return fmt.Errorf("insufficient disk space: %dGB available, %dGB required\n"+
				"Fix: free up space (check usage with df -h)", availableGB, minGB)
		}
		return nil
	}
}
