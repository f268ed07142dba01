package pip

import (
	"strings"
	"testing"

	"github.com/kaleshlabs/stagehand/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequirements(t *testing.T) {
	t.Parallel()

	manifest := strings.Join([]string{
		"# backend dependencies",
		"",
		"fastapi==0.111.0",
		"uvicorn[standard]>=0.29",
		"motor~=3.4",
		"boto3",
		"python-dotenv  # loaded at startup",
		"httpx; python_version >= '3.9'",
		"pillow @ https://example.com/pillow-10.3.0.tar.gz",
		"-r extra-requirements.txt",
		"--index-url https://pypi.org/simple",
	}, "\n")

	reqs, err := parseRequirements(strings.NewReader(manifest))
	require.NoError(t, err)

	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		r := r
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"fastapi", "uvicorn", "motor", "boto3", "python-dotenv", "httpx", "pillow",
	}, names)
}

func TestParseRequirementsEmpty(t *testing.T) {
	t.Parallel()

	reqs, err := parseRequirements(strings.NewReader("# nothing here\n\n"))
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestParseRequirementsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "requirements.txt", "fastapi==0.111.0\nmotor\n", 0o644)

	reqs, err := ParseRequirementsFile(path)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "fastapi", reqs[0].Name)
	assert.Equal(t, "fastapi==0.111.0", reqs[0].Raw)
	assert.Equal(t, "motor", reqs[1].Name)
}

func TestParseRequirementsFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ParseRequirementsFile("/nonexistent/requirements.txt")
	assert.Error(t, err)
}

func TestDistributionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want string
	}{
		{"fastapi==0.111.0", "fastapi"},
		{"uvicorn[standard]>=0.29", "uvicorn"},
		{"motor~=3.4", "motor"},
		{"boto3", "boto3"},
		{"httpx; python_version >= '3.9'", "httpx"},
		{"pillow @ https://example.com/x.tar.gz", "pillow"},
		{"requests !=2.31.0", "requests"},
		{"aiofiles<24", "aiofiles"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, distributionName(tt.line))
		})
	}
}
