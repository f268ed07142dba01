// pkg/build/build.go

// Package build sequences the host provisioning steps: refresh the apt
// index, install the media tooling, install the backend's Python
// dependencies, then print the completion line.
package build

import (
	"fmt"
	"io"
	"os"

	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/apt"
	"github.com/kaleshlabs/stagehand/pkg/config"
	"github.com/kaleshlabs/stagehand/pkg/ffmpeg"
	"github.com/kaleshlabs/stagehand/pkg/pip"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"go.uber.org/zap"
)

// Step is one provisioning action. Steps run strictly in order; each waits
// for its child processes to exit before the next starts.
type Step struct {
	Name string
	Run  func(rc *stage_io.RuntimeContext) error
}

// Options selects build behavior.
type Options struct {
	Settings   *config.BuildSettings
	SkipUpdate bool
	// KeepGoing restores the legacy shell-script semantics: run every step
	// regardless of failures and print the completion line last either way.
	KeepGoing bool
	DryRun    bool
	// Out receives the completion line. Defaults to os.Stdout, which is
	// kept free of log output for exactly this purpose.
	Out io.Writer
}

// Steps returns the ordered provisioning steps for opts.
func Steps(opts Options) []Step {
	aptOpts := apt.Options{
		Retries:    opts.Settings.AptRetries,
		RetryDelay: opts.Settings.AptRetryDelay,
		Timeout:    opts.Settings.StepTimeout,
		DryRun:     opts.DryRun,
	}

	steps := []Step{}

	if !opts.SkipUpdate {
		steps = append(steps, Step{
			Name: "refresh package index",
			Run: func(rc *stage_io.RuntimeContext) error {
				return apt.Update(rc, aptOpts)
			},
		})
	}

	steps = append(steps,
		Step{
			Name: "install media tooling",
			Run: func(rc *stage_io.RuntimeContext) error {
				if err := ffmpeg.EnsureInstalled(rc, aptOpts); err != nil {
					return err
				}
				if len(opts.Settings.MediaPackages) > 1 {
					return apt.Install(rc, aptOpts, opts.Settings.MediaPackages[1:]...)
				}
				return nil
			},
		},
		Step{
			Name: "install python dependencies",
			Run: func(rc *stage_io.RuntimeContext) error {
				return pip.InstallRequirements(rc, pip.Options{
					ManifestPath: opts.Settings.RequirementsFile,
					Timeout:      opts.Settings.StepTimeout,
					DryRun:       opts.DryRun,
				})
			},
		},
	)

	return steps
}

// Run executes the build. The default is fail-fast: the first failing step
// aborts the run and the completion line is withheld. With KeepGoing every
// step runs and the completion line is still the final stdout line, but the
// combined error is returned so the exit code reflects what happened.
func Run(rc *stage_io.RuntimeContext, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if err := apt.EnsureSupported(rc); err != nil {
		return err
	}

	return runSteps(rc, Steps(opts), opts.KeepGoing, out)
}

func runSteps(rc *stage_io.RuntimeContext, steps []Step, keepGoing bool, out io.Writer) error {
	var failed error

	for i, step := range steps {
		rc.Log.Info("Starting build step",
			zap.Int("step", i+1),
			zap.Int("total", len(steps)),
			zap.String("name", step.Name))

		err := step.Run(rc)
		if err == nil {
			rc.Log.Info("Build step succeeded", zap.String("name", step.Name))
			continue
		}

		if !keepGoing {
			return cerr.Wrapf(err, "build step %q", step.Name)
		}
		rc.Log.Warn("Build step failed, continuing",
			zap.String("name", step.Name),
			zap.Error(err))
		failed = cerr.CombineErrors(failed, cerr.Wrapf(err, "build step %q", step.Name))
	}

	fmt.Fprintln(out, config.CompletionMessage)

	if failed != nil {
		return cerr.Wrap(failed, "build completed with failures")
	}
	return nil
}
