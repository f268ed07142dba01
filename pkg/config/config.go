// pkg/config/config.go

// Package config resolves build settings from defaults, an optional .env
// file, and STAGEHAND_* environment variables, in that order. The backend
// this tool provisions keeps its own settings in .env, so operators expect
// the same convention here.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultRequirementsFile is the conventional manifest location: the
	// working directory at execution time.
	DefaultRequirementsFile = "requirements.txt"

	// DefaultMediaPackage is the media-processing tool the backend shells
	// out to.
	DefaultMediaPackage = "ffmpeg"

	// CompletionMessage is printed as the final stdout line of a successful
	// build. The exact string is load-bearing: deploy tooling greps for it.
	CompletionMessage = "Build completed successfully!"
)

// BuildSettings holds everything the build command needs.
type BuildSettings struct {
	RequirementsFile string
	MediaPackages    []string
	StepTimeout      time.Duration
	AptRetries       int
	AptRetryDelay    time.Duration
}

// Load resolves settings. A missing .env is not an error.
func Load() *BuildSettings {
	_ = godotenv.Load()

	s := &BuildSettings{
		RequirementsFile: DefaultRequirementsFile,
		MediaPackages:    []string{DefaultMediaPackage},
		StepTimeout:      15 * time.Minute,
		AptRetries:       3,
		AptRetryDelay:    5 * time.Second,
	}

	if v := os.Getenv("STAGEHAND_REQUIREMENTS"); v != "" {
		s.RequirementsFile = v
	}
	if v := os.Getenv("STAGEHAND_STEP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.StepTimeout = d
		}
	}
	if v := os.Getenv("STAGEHAND_APT_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.AptRetries = n
		}
	}

	return s
}
