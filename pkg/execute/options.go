// pkg/execute/options.go

package execute

import (
	"time"

	"go.uber.org/zap"
)

// Options controls a single command execution.
type Options struct {
	Command string
	Args    []string
	Dir     string
	// Env entries are appended to the inherited environment.
	Env     []string
	Timeout time.Duration
	Retries int
	Delay   time.Duration
	// Capture returns combined output to the caller instead of discarding it.
	Capture bool
	DryRun  bool
	// Stream mirrors child output to the terminal while it runs. Package
	// managers produce progress output operators expect to see.
	Stream bool
	Logger *zap.Logger
}

// DefaultLogger, when set, is used by Run for calls that do not carry their
// own logger.
var DefaultLogger *zap.Logger

// DefaultDryRun forces dry-run mode globally, used by the --dry-run flag.
var DefaultDryRun bool
