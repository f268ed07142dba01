// cmd/refresh/refresh.go

package refresh

import (
	"github.com/kaleshlabs/stagehand/pkg/apt"
	"github.com/kaleshlabs/stagehand/pkg/cli"
	"github.com/kaleshlabs/stagehand/pkg/config"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"github.com/spf13/cobra"
)

// RefreshCmd refreshes the apt package index without installing anything.
var RefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the apt package index",
	RunE: cli.Wrap(func(rc *stage_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		settings := config.Load()

		if err := apt.EnsureSupported(rc); err != nil {
			return err
		}
		return apt.Update(rc, apt.Options{
			Retries:    settings.AptRetries,
			RetryDelay: settings.AptRetryDelay,
			Timeout:    settings.StepTimeout,
		})
	}),
}
