// cmd/check/check.go

package check

import (
	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/cli"
	"github.com/kaleshlabs/stagehand/pkg/config"
	"github.com/kaleshlabs/stagehand/pkg/ffmpeg"
	"github.com/kaleshlabs/stagehand/pkg/pip"
	"github.com/kaleshlabs/stagehand/pkg/preflight"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	requirementsFile string
	minFFmpeg        string
)

// CheckCmd verifies that a build left the host in a usable state.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify FFmpeg and the Python dependencies are installed",
	Long: `Check verifies the host without changing it: ffmpeg and ffprobe resolve on
PATH and report a version, python3 and pip3 are available, and every package
named in the requirements manifest is installed.`,
	RunE: cli.Wrap(func(rc *stage_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		settings := config.Load()
		if requirementsFile != "" {
			settings.RequirementsFile = requirementsFile
		}

		checks := []preflight.Check{
			{
				Name:        "ffmpeg",
				Description: "ffmpeg resolves on PATH and runs",
				Check:       preflight.CheckCommandRuns(ffmpeg.BinFFmpeg, "-version"),
				Required:    true,
			},
			{
				Name:        "ffprobe",
				Description: "ffprobe resolves on PATH",
				Check:       preflight.CheckCommand(ffmpeg.BinFFprobe, "sudo apt-get install -y ffmpeg"),
				Required:    true,
			},
			{
				Name:        "python3",
				Description: "python3 resolves on PATH",
				Check:       preflight.CheckCommand("python3", "sudo apt-get install -y python3"),
				Required:    true,
			},
			{
				Name:        "pip3",
				Description: "pip3 resolves on PATH",
				Check:       preflight.CheckCommand("pip3", "sudo apt-get install -y python3-pip"),
				Required:    true,
			},
			{
				Name:        "requirements manifest",
				Description: "the requirements manifest exists",
				Check: preflight.CheckFileExists(settings.RequirementsFile,
					"run from the backend checkout or pass --requirements"),
				Required: true,
			},
			{
				Name:        "disk space",
				Description: "minimum 2GB free on /",
				Check:       preflight.CheckDiskSpace(2),
				Required:    false,
			},
		}

		if _, err := preflight.RunChecks(rc.Ctx, checks); err != nil {
			return stage_err.NewExpectedError(rc.Ctx, err)
		}

		if minFFmpeg != "" {
			installed, err := ffmpeg.Version(rc)
			if err != nil {
				return err
			}
			ok, err := ffmpeg.MeetsMinimum(installed, minFFmpeg)
			if err != nil {
				return err
			}
			if !ok {
				return stage_err.NewExpectedError(rc.Ctx,
					cerr.Newf("ffmpeg %s is older than required %s", installed, minFFmpeg))
			}
			rc.Log.Info("ffmpeg version acceptable",
				zap.String("installed", installed),
				zap.String("minimum", minFFmpeg))
		}

		missing, err := pip.VerifyRequirements(rc, settings.RequirementsFile)
		if err != nil {
			if len(missing) > 0 {
				rc.Log.Warn("Missing Python packages", zap.Strings("packages", missing))
				return stage_err.NewExpectedError(rc.Ctx, err)
			}
			return err
		}

		rc.Log.Info("Host verified")
		return nil
	}),
}

func init() {
	CheckCmd.Flags().StringVarP(&requirementsFile, "requirements", "r", "", "path to the requirements manifest (default requirements.txt)")
	CheckCmd.Flags().StringVar(&minFFmpeg, "min-ffmpeg", "", "fail unless the installed ffmpeg is at least this version")
}
