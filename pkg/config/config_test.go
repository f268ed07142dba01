package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	s := Load()

	assert.Equal(t, "requirements.txt", s.RequirementsFile)
	assert.Equal(t, []string{"ffmpeg"}, s.MediaPackages)
	assert.Equal(t, 15*time.Minute, s.StepTimeout)
	assert.Equal(t, 3, s.AptRetries)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STAGEHAND_REQUIREMENTS", "/opt/kalesh/requirements.txt")
	t.Setenv("STAGEHAND_STEP_TIMEOUT", "5m")
	t.Setenv("STAGEHAND_APT_RETRIES", "1")

	s := Load()

	assert.Equal(t, "/opt/kalesh/requirements.txt", s.RequirementsFile)
	assert.Equal(t, 5*time.Minute, s.StepTimeout)
	assert.Equal(t, 1, s.AptRetries)
}

func TestLoadIgnoresInvalidOverrides(t *testing.T) {
	t.Setenv("STAGEHAND_STEP_TIMEOUT", "soon")
	t.Setenv("STAGEHAND_APT_RETRIES", "-2")

	s := Load()

	assert.Equal(t, 15*time.Minute, s.StepTimeout)
	assert.Equal(t, 3, s.AptRetries)
}
