// pkg/stage_err/summary.go

package stage_err

import (
	"context"
	"strings"
)

// errorKeywords are matched case-insensitively against command output lines
// when summarizing a failed child process.
var errorKeywords = []string{
	"error", "failed", "fatal", "panic", "timeout", "cannot",
	"unable", "denied", "refused", "e:", "could not",
}

// ExtractSummary pulls the most error-looking lines out of raw command
// output, up to maxCandidates, joined with " - ". Falls back to the first
// non-empty line when nothing matches.
func ExtractSummary(ctx context.Context, output string, maxCandidates int) string {
	lines := strings.Split(output, "\n")

	var candidates []string
	var firstNonEmpty string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if firstNonEmpty == "" {
			firstNonEmpty = trimmed
		}
		if len(candidates) < maxCandidates && looksLikeError(trimmed) {
			candidates = append(candidates, trimmed)
		}
	}

	if len(candidates) > 0 {
		return strings.Join(candidates, " - ")
	}
	if firstNonEmpty != "" {
		return firstNonEmpty
	}
	return "No output provided."
}

func looksLikeError(line string) bool {
	lowered := strings.ToLower(line)
	for _, kw := range errorKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
