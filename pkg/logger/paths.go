// pkg/logger/paths.go

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap/zapcore"
)

const systemLogPath = "/var/log/stagehand/stagehand.log"

// PlatformLogPaths returns candidate log paths in priority order.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{
			systemLogPath, // writable when run via sudo
			xdgStatePath("stagehand.log"),
			"/tmp/stagehand/stagehand.log",
		}
	case "darwin":
		return []string{
			xdgStatePath("stagehand.log"),
			"/tmp/stagehand/stagehand.log",
		}
	default:
		return []string{filepath.Join(os.TempDir(), "stagehand", "stagehand.log")}
	}
}

// xdgStatePath resolves a file under XDG_STATE_HOME, falling back to
// ~/.local/state per the basedir spec.
func xdgStatePath(name string) string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "stagehand", name)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "stagehand", name)
}

// FindWritableLogPath returns the first path whose directory can be created
// and whose file can be opened for appending.
func FindWritableLogPath() (string, error) {
	for _, path := range PlatformLogPaths() {
		if _, err := GetLogFileWriter(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no writable log path found")
}

// GetLogFileWriter opens path for appending, creating the parent directory
// with owner-only permissions.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return zapcore.AddSync(file), nil
}
