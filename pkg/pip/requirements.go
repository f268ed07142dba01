// pkg/pip/requirements.go

package pip

import (
	"bufio"
	"io"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// Requirement is one entry of a requirements manifest: the distribution name
// plus the raw line it came from. Installation never consumes this — the
// manifest is handed to pip verbatim; parsing exists only so the check
// command can verify each named package afterwards.
type Requirement struct {
	Name string
	Raw  string
}

// ParseRequirementsFile reads a requirements manifest and returns the named
// requirements, skipping comments, blank lines, options, and includes.
func ParseRequirementsFile(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerr.Wrapf(err, "open requirements manifest %s", path)
	}
	defer f.Close()

	reqs, err := parseRequirements(f)
	if err != nil {
		return nil, cerr.Wrapf(err, "parse requirements manifest %s", path)
	}
	return reqs, nil
}

func parseRequirements(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// pip options (-r includes, --index-url, editable installs) name no
		// single distribution to verify.
		if strings.HasPrefix(line, "-") {
			continue
		}
		name := distributionName(line)
		if name == "" {
			continue
		}
		reqs = append(reqs, Requirement{Name: name, Raw: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// distributionName strips version specifiers, extras, and environment
// markers from a requirement line.
func distributionName(line string) string {
	// URL requirements (pkg @ https://...) keep the name left of the @.
	if name, _, found := strings.Cut(line, "@"); found {
		line = name
	}
	if name, _, found := strings.Cut(line, ";"); found {
		line = name
	}
	if idx := strings.IndexAny(line, "=<>!~[ \t"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
