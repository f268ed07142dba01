/* cmd/root.go */

package cmd

import (
	"os"

	"github.com/kaleshlabs/stagehand/cmd/build"
	"github.com/kaleshlabs/stagehand/cmd/check"
	"github.com/kaleshlabs/stagehand/cmd/refresh"
	"github.com/kaleshlabs/stagehand/pkg/logger"
	"github.com/kaleshlabs/stagehand/pkg/shared"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command for stagehand.
var RootCmd = &cobra.Command{
	Use:     "stagehand",
	Short:   "Provision a host to run the Kalesh media backend",
	Version: shared.Version,
	Long: `Stagehand prepares a Debian/Ubuntu host for the media backend: it refreshes
the package index, installs FFmpeg, and installs the Python dependencies
listed in the requirements manifest. Run it from the backend checkout, or
point --requirements at the manifest.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		build.BuildCmd,
		check.CheckCmd,
		refresh.RefreshCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute runs the root command and maps errors to exit codes.
func Execute() {
	defer func() {
		_ = logger.Sync()
	}()

	RegisterCommands()

	if err := logger.WithCommandLogging("stagehand", RootCmd.Execute); err != nil {
		if stage_err.IsExpectedUserError(err) {
			logger.L().Warn("Command completed with user error", zap.Error(err))
		}
		// os.Exit skips deferred functions, so flush the logs here.
		_ = logger.Sync()
		os.Exit(stage_err.ExitCodeFor(err))
	}
}
