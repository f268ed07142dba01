// pkg/platform/detect.go

package platform

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

const osReleasePath = "/etc/os-release"

// OSReleaseInfo holds the fields of /etc/os-release that package selection
// cares about.
type OSReleaseInfo struct {
	ID         string
	IDLike     string
	VersionID  string
	PrettyName string
}

// GetOSPlatform returns a coarse platform label.
func GetOSPlatform() string {
	switch runtime.GOOS {
	case "linux":
		return "linux"
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	default:
		return runtime.GOOS
	}
}

// ParseOSRelease reads and parses /etc/os-release.
func ParseOSRelease() (*OSReleaseInfo, error) {
	f, err := os.Open(osReleasePath)
	if err != nil {
		return nil, cerr.Wrapf(err, "open %s", osReleasePath)
	}
	defer f.Close()

	info, err := parseOSRelease(f)
	if err != nil {
		return nil, cerr.Wrapf(err, "read %s", osReleasePath)
	}
	return info, nil
}

func parseOSRelease(r io.Reader) (*OSReleaseInfo, error) {
	info := &OSReleaseInfo{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			info.ID = value
		case "ID_LIKE":
			info.IDLike = value
		case "VERSION_ID":
			info.VersionID = value
		case "PRETTY_NAME":
			info.PrettyName = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return info, nil
}

// IsDebianBased reports whether the host uses apt (Debian, Ubuntu, and their
// derivatives via ID_LIKE).
func IsDebianBased() (bool, error) {
	if runtime.GOOS != "linux" {
		return false, nil
	}
	info, err := ParseOSRelease()
	if err != nil {
		return false, err
	}
	return isDebianID(info.ID, info.IDLike), nil
}

func isDebianID(id, idLike string) bool {
	if id == "debian" || id == "ubuntu" {
		return true
	}
	return strings.Contains(idLike, "debian") || strings.Contains(idLike, "ubuntu")
}

// DetectLinuxDistro returns the os-release ID, or "unknown" when it cannot
// be determined.
func DetectLinuxDistro() string {
	info, err := ParseOSRelease()
	if err != nil || info.ID == "" {
		return "unknown"
	}
	return info.ID
}

// RequiresSudo reports whether privileged commands need a sudo prefix.
func RequiresSudo() bool {
	return runtime.GOOS != "windows" && os.Geteuid() != 0
}

// SudoPrefix prepends sudo to argv when the current user is not root.
func SudoPrefix(name string, args ...string) (string, []string) {
	if !RequiresSudo() {
		return name, args
	}
	return "sudo", append([]string{name}, args...)
}
