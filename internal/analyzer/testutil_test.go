package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"ucindex/internal/config"
)

func testCfg() config.ScanConfig {
	return config.ScanConfig{
		ClassesDir: "Classes",
		SourceExt:  ".uc",
		IgnoreFile: ".ucignore",
	}
}

// buildTree writes a package tree into a temp dir and returns its root.
// Keys are slash-separated paths relative to the root.
func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}
