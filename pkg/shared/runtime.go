// pkg/shared/runtime.go

package shared

import (
	"go.uber.org/zap"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// SafeSync flushes the global logger, swallowing the EINVAL that zap
// reports when stdout/stderr are not syncable (terminals, pipes).
func SafeSync() {
	if l := zap.L(); l != nil {
		_ = l.Sync()
	}
}
