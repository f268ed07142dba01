package preflight

import (
	"context"
	"testing"

	"github.com/kaleshlabs/stagehand/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// sh is present on any host these tests run on.
	assert.NoError(t, CheckCommand("sh", "install a shell")(ctx))

	err := CheckCommand("definitely-not-a-binary-xyz", "install it")(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on PATH")
	assert.Contains(t, err.Error(), "install it")
}

func TestCheckCommandRuns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.NoError(t, CheckCommandRuns("sh", "-c", "exit 0")(ctx))
	assert.Error(t, CheckCommandRuns("sh", "-c", "exit 1")(ctx))
}

func TestCheckFileExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "requirements.txt", "fastapi\n", 0o644)

	assert.NoError(t, CheckFileExists(path, "create it")(ctx))
	assert.Error(t, CheckFileExists(path+".missing", "create it")(ctx))
	assert.Error(t, CheckFileExists(dir, "create it")(ctx), "directories are not manifests")
}

func TestRunChecksRequiredFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	checks := []Check{
		{
			Name:     "passes",
			Check:    func(context.Context) error { return nil },
			Required: true,
		},
		{
			Name:     "fails required",
			Check:    CheckCommand("definitely-not-a-binary-xyz", "install it"),
			Required: true,
		},
	}

	results, err := RunChecks(ctx, checks)
	require.Error(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
}

func TestRunChecksOptionalFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	checks := []Check{
		{
			Name:  "fails optional",
			Check: CheckCommand("definitely-not-a-binary-xyz", "install it"),
		},
	}

	results, err := RunChecks(ctx, checks)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.NotEmpty(t, results[0].Warning)
}
