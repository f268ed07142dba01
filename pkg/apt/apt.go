// pkg/apt/apt.go

// Package apt drives apt-get on Debian-based hosts. Anything newer
// (nala, apt itself) is avoided for scripting: apt-get keeps a stable CLI.
package apt

import (
	"context"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/execute"
	"github.com/kaleshlabs/stagehand/pkg/platform"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"go.uber.org/zap"
)

// noninteractiveEnv suppresses debconf prompts during unattended installs.
var noninteractiveEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Options tunes retry behavior for index refreshes, which fail transiently
// on busy mirrors.
type Options struct {
	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration
	DryRun     bool
}

func (o Options) retries() int {
	if o.Retries > 0 {
		return o.Retries
	}
	return 1
}

// EnsureSupported verifies the host uses apt before any step runs.
func EnsureSupported(rc *stage_io.RuntimeContext) error {
	if platform.GetOSPlatform() != "linux" {
		return stage_err.NewExpectedError(rc.Ctx,
			cerr.Newf("unsupported platform %q: this tool provisions Debian/Ubuntu hosts", platform.GetOSPlatform()))
	}
	debian, err := platform.IsDebianBased()
	if err != nil {
		return cerr.Wrap(err, "detect distribution")
	}
	if !debian {
		return stage_err.NewExpectedError(rc.Ctx,
			cerr.Newf("unsupported distribution %q: apt is required", platform.DetectLinuxDistro()))
	}
	return nil
}

// Update refreshes the package index. Attempts stream their output to the
// terminal so mirror errors are visible as they happen.
func Update(rc *stage_io.RuntimeContext, opts Options) error {
	rc.Log.Info("Refreshing apt package index")

	name, args := platform.SudoPrefix("apt-get", "update")

	if opts.DryRun || execute.DefaultDryRun {
		rc.Log.Info("Dry run mode - command not executed",
			zap.String("command", name), zap.Strings("args", args))
		return nil
	}

	ctx := rc.Ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if err := execute.RetryCommand(ctx, rc.Log, opts.retries(), opts.RetryDelay, name, args...); err != nil {
		return cerr.Wrap(err, "apt-get update")
	}

	rc.Log.Info("Package index refreshed")
	return nil
}

// Install installs the named packages. Already-installed packages are left
// untouched; apt-get install is idempotent.
func Install(rc *stage_io.RuntimeContext, opts Options, packages ...string) error {
	if len(packages) == 0 {
		return nil
	}
	rc.Log.Info("Installing packages with apt",
		zap.Strings("packages", packages),
		zap.Int("count", len(packages)))

	installArgs := append([]string{"install", "-y"}, packages...)
	name, args := platform.SudoPrefix("apt-get", installArgs...)
	_, err := execute.Run(rc.Ctx, execute.Options{
		Command: name,
		Args:    args,
		Env:     noninteractiveEnv,
		Timeout: opts.Timeout,
		DryRun:  opts.DryRun,
		Stream:  true,
		Logger:  rc.Log,
	})
	if err != nil {
		return cerr.Wrapf(err, "apt-get install %v", packages)
	}

	rc.Log.Info("Packages installed", zap.Strings("packages", packages))
	return nil
}
