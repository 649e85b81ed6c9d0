package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteGuide writes a markdown guide under dir, creating parents, and returns
// its path.
func WriteGuide(t testing.TB, dir, rel, body string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
