package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTestFile creates a test file with the given content and permissions,
// returning its path.
func CreateTestFile(t *testing.T, dir, filename, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write test file %s: %v", path, err)
	}
	return path
}

// AssertFileExists fails the test when path does not exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("expected file to exist: %s", path)
	}
}
