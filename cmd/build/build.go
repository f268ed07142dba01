// cmd/build/build.go

package build

import (
	"github.com/kaleshlabs/stagehand/pkg/build"
	"github.com/kaleshlabs/stagehand/pkg/cli"
	"github.com/kaleshlabs/stagehand/pkg/config"
	"github.com/kaleshlabs/stagehand/pkg/execute"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	requirementsFile string
	skipUpdate       bool
	keepGoing        bool
	dryRun           bool
)

// BuildCmd provisions the host: package index refresh, FFmpeg install,
// Python dependency install, completion line.
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Install FFmpeg and the backend's Python dependencies",
	Long: `Build runs the provisioning steps in order:

  1. Refresh the apt package index
  2. Install ffmpeg
  3. Install Python dependencies from the requirements manifest

The run stops at the first failing step and the completion line is only
printed when every step succeeded. Use --keep-going to run all steps
regardless of failures, as the old build script did.`,
	RunE: cli.Wrap(func(rc *stage_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		settings := config.Load()
		if requirementsFile != "" {
			settings.RequirementsFile = requirementsFile
		}

		execute.DefaultDryRun = dryRun

		rc.Log.Info("Starting build",
			zap.String("requirements", settings.RequirementsFile),
			zap.Bool("skip_update", skipUpdate),
			zap.Bool("keep_going", keepGoing),
			zap.Bool("dry_run", dryRun))
		rc.Attributes["requirements"] = settings.RequirementsFile

		return build.Run(rc, build.Options{
			Settings:   settings,
			SkipUpdate: skipUpdate,
			KeepGoing:  keepGoing,
			DryRun:     dryRun,
		})
	}),
}

func init() {
	BuildCmd.Flags().StringVarP(&requirementsFile, "requirements", "r", "", "path to the requirements manifest (default requirements.txt)")
	BuildCmd.Flags().BoolVar(&skipUpdate, "skip-update", false, "skip the package index refresh")
	BuildCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "run all steps even when one fails (legacy script behavior)")
	BuildCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the commands without executing them")
}
