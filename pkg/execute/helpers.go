// pkg/execute/helpers.go

package execute

import (
	"fmt"
	"strings"
	"time"
)

func defaultTimeout(t time.Duration) time.Duration {
	if t > 0 {
		return t
	}
	// Package installs can legitimately take minutes on a cold mirror.
	return 10 * time.Minute
}

func buildCommandString(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

// joinArgs quotes each arg for readable log lines.
func joinArgs(args []string) string {
	var quoted []string
	for _, arg := range args {
		quoted = append(quoted, fmt.Sprintf("'%s'", arg))
	}
	return strings.Join(quoted, " ")
}
