package pip

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kaleshlabs/stagehand/pkg/platform"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInstallArgv(t *testing.T) {
	t.Parallel()

	name, args := installArgv("requirements.txt", false)
	if platform.RequiresSudo() {
		assert.Equal(t, "sudo", name)
		assert.Equal(t, []string{"pip3", "install", "-r", "requirements.txt"}, args)
	} else {
		assert.Equal(t, "pip3", name)
		assert.Equal(t, []string{"install", "-r", "requirements.txt"}, args)
	}

	name, args = installArgv("requirements.txt", true)
	if platform.RequiresSudo() {
		assert.Equal(t, "sudo", name)
		assert.Equal(t, []string{"pip3", "install", "--break-system-packages", "-r", "requirements.txt"}, args)
	} else {
		assert.Equal(t, "pip3", name)
		assert.Equal(t, []string{"install", "--break-system-packages", "-r", "requirements.txt"}, args)
	}
}

func TestInstallRequirementsMissingManifest(t *testing.T) {
	t.Parallel()

	rc := &stage_io.RuntimeContext{Ctx: context.Background(), Log: zap.NewNop()}
	err := InstallRequirements(rc, Options{
		ManifestPath: filepath.Join(t.TempDir(), "requirements.txt"),
	})
	require.Error(t, err)

	var ce *stage_err.ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, stage_err.CategoryValidation, ce.Category)
	assert.Equal(t, 2, stage_err.ExitCodeFor(err))
}
