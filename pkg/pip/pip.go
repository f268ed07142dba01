// pkg/pip/pip.go

// Package pip installs the backend's Python dependencies from a requirements
// manifest. The manifest's contents belong to the Python ecosystem; this
// package passes the file through to pip untouched and only parses it when
// verifying an installation.
package pip

import (
	"os"
	"os/exec"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/execute"
	"github.com/kaleshlabs/stagehand/pkg/platform"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"go.uber.org/zap"
)

// Options controls an InstallRequirements run.
type Options struct {
	ManifestPath string
	Timeout      time.Duration
	DryRun       bool
}

// EnsureAvailable verifies python3 and pip3 resolve on PATH.
func EnsureAvailable(rc *stage_io.RuntimeContext) error {
	out, err := exec.CommandContext(rc.Ctx, "python3", "--version").Output()
	if err != nil {
		return stage_err.NewDependencyError("python3 not found on PATH", err,
			"Install Python 3: sudo apt-get install -y python3 python3-pip")
	}
	rc.Log.Debug("Python version", zap.String("version", strings.TrimSpace(string(out))))

	if _, err := exec.LookPath("pip3"); err != nil {
		return stage_err.NewDependencyError("pip3 not found on PATH", err,
			"Install pip: sudo apt-get install -y python3-pip")
	}
	return nil
}

// InstallRequirements runs pip3 install -r against the manifest. On PEP 668
// managed hosts (Debian 12+, Ubuntu 23.04+) pip refuses system-wide installs,
// so a refusal is retried with --break-system-packages, matching what the
// backend's deploy images do.
func InstallRequirements(rc *stage_io.RuntimeContext, opts Options) error {
	if _, err := os.Stat(opts.ManifestPath); err != nil {
		return stage_err.NewValidationError(
			"requirements manifest not found: "+opts.ManifestPath, err,
			"Run from the backend checkout, or point --requirements at the manifest")
	}

	if err := EnsureAvailable(rc); err != nil {
		return err
	}

	rc.Log.Info("Installing Python dependencies", zap.String("manifest", opts.ManifestPath))

	name, args := installArgv(opts.ManifestPath, false)
	output, err := execute.Run(rc.Ctx, execute.Options{
		Command: name,
		Args:    args,
		Timeout: opts.Timeout,
		DryRun:  opts.DryRun,
		Stream:  true,
		Capture: true,
		Logger:  rc.Log,
	})
	if err == nil {
		rc.Log.Info("Python dependencies installed", zap.String("manifest", opts.ManifestPath))
		return nil
	}

	if !isExternallyManaged(output) {
		return cerr.Wrap(err, "pip3 install")
	}

	rc.Log.Warn("Environment is externally managed (PEP 668), retrying with --break-system-packages")
	name, args = installArgv(opts.ManifestPath, true)
	_, err = execute.Run(rc.Ctx, execute.Options{
		Command: name,
		Args:    args,
		Timeout: opts.Timeout,
		DryRun:  opts.DryRun,
		Stream:  true,
		Logger:  rc.Log,
	})
	if err != nil {
		return cerr.Wrap(err, "pip3 install --break-system-packages")
	}

	rc.Log.Info("Python dependencies installed", zap.String("manifest", opts.ManifestPath))
	return nil
}

// installArgv builds the pip3 install command line. System-wide installs
// need the same privilege escalation apt-get gets, so both attempts run
// through the sudo prefix when the caller is unprivileged.
func installArgv(manifestPath string, breakSystemPackages bool) (string, []string) {
	args := []string{"install"}
	if breakSystemPackages {
		args = append(args, "--break-system-packages")
	}
	args = append(args, "-r", manifestPath)
	return platform.SudoPrefix("pip3", args...)
}

func isExternallyManaged(output string) bool {
	return strings.Contains(output, "externally-managed-environment")
}

// VerifyRequirements checks every package named in the manifest against
// pip3 show and returns the names that are missing.
func VerifyRequirements(rc *stage_io.RuntimeContext, manifestPath string) ([]string, error) {
	reqs, err := ParseRequirementsFile(manifestPath)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, req := range reqs {
		if err := exec.CommandContext(rc.Ctx, "pip3", "show", "--quiet", req.Name).Run(); err != nil {
			rc.Log.Warn("Package not installed", zap.String("package", req.Name))
			missing = append(missing, req.Name)
			continue
		}
		rc.Log.Debug("Package installed", zap.String("package", req.Name))
	}

	if len(missing) > 0 {
		return missing, cerr.Newf("%d of %d packages missing", len(missing), len(reqs))
	}
	rc.Log.Info("All manifest packages installed", zap.Int("count", len(reqs)))
	return nil, nil
}
