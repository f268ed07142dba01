// pkg/ffmpeg/ffmpeg.go

// Package ffmpeg installs and probes the ffmpeg/ffprobe binaries the backend
// shells out to for transcoding and thumbnail extraction.
package ffmpeg

import (
	"os/exec"
	"strings"

	cerr "github.com/cockroachdb/errors"
	goversion "github.com/hashicorp/go-version"
	"github.com/kaleshlabs/stagehand/pkg/apt"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"go.uber.org/zap"
)

// Binary names probed on PATH. ffprobe ships in the same apt package but is
// checked separately; the backend calls both.
const (
	BinFFmpeg  = "ffmpeg"
	BinFFprobe = "ffprobe"
)

// IsInstalled reports whether ffmpeg resolves on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath(BinFFmpeg)
	return err == nil
}

// EnsureInstalled installs ffmpeg via apt unless it is already present.
func EnsureInstalled(rc *stage_io.RuntimeContext, opts apt.Options) error {
	if IsInstalled() && !opts.DryRun {
		version, err := Version(rc)
		if err == nil {
			rc.Log.Info("ffmpeg already installed", zap.String("version", version))
			return nil
		}
		rc.Log.Warn("ffmpeg on PATH but version probe failed, reinstalling", zap.Error(err))
	}

	if err := apt.Install(rc, opts, BinFFmpeg); err != nil {
		return err
	}

	if opts.DryRun {
		return nil
	}
	version, err := Version(rc)
	if err != nil {
		return cerr.Wrap(err, "ffmpeg installed but not usable")
	}
	rc.Log.Info("ffmpeg installed", zap.String("version", version))
	return nil
}

// Version returns the version string parsed from the ffmpeg banner.
func Version(rc *stage_io.RuntimeContext) (string, error) {
	out, err := exec.CommandContext(rc.Ctx, BinFFmpeg, "-version").Output()
	if err != nil {
		return "", cerr.Wrap(err, "ffmpeg -version")
	}
	version := parseVersionBanner(string(out))
	if version == "" {
		return "", cerr.New("unrecognized ffmpeg -version output")
	}
	return version, nil
}

// parseVersionBanner extracts the version token from the first line of
// `ffmpeg -version` output, e.g.
// "ffmpeg version 6.1.1-3ubuntu5 Copyright (c) ..." -> "6.1.1-3ubuntu5".
func parseVersionBanner(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "ffmpeg" || fields[1] != "version" {
		return ""
	}
	return fields[2]
}

// MeetsMinimum reports whether installed satisfies the minimum version.
// Distro suffixes ("-3ubuntu5", "n7.0") are stripped before comparing;
// unparseable versions fail open since the package came from the distro.
func MeetsMinimum(installed, minimum string) (bool, error) {
	min, err := goversion.NewVersion(minimum)
	if err != nil {
		return false, cerr.Wrapf(err, "invalid minimum version %q", minimum)
	}
	have, err := goversion.NewVersion(normalizeVersion(installed))
	if err != nil {
		return true, nil
	}
	return have.GreaterThanOrEqual(min), nil
}

func normalizeVersion(v string) string {
	v = strings.TrimPrefix(v, "n")
	if name, _, found := strings.Cut(v, "-"); found {
		v = name
	}
	return v
}
