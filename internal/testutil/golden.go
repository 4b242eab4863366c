package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// AssertGolden compares output with testdata/<goldenName> at the repository
// root. The file is (re)written when UPDATE_GOLDEN is set or it does not
// exist yet.
func AssertGolden(t *testing.T, goldenName, output string) {
	t.Helper()
	path := filepath.Join(repoRoot(t), "testdata", goldenName)
	_, statErr := os.Stat(path)
	if os.Getenv("UPDATE_GOLDEN") != "" || os.IsNotExist(statErr) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			t.Fatalf("failed to update golden: %v", err)
		}
		t.Logf("wrote golden %s", goldenName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden %s: %v", goldenName, err)
	}
	if string(data) != output {
		t.Fatalf("output mismatch for %s\nexpected:\n%s\nactual:\n%s", goldenName, string(data), output)
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
