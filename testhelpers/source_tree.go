package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// NewSourceTree creates <tmp>/<parent>/<name> populated with files and
// returns its absolute path. Keys are slash-separated paths relative to the
// root; a key ending in "/" creates an empty directory.
//
// Usage:
//
//	root := testhelpers.NewSourceTree(t, "backend", "src", map[string]string{
//	    "main.ts":           "bootstrap();\n",
//	    "users/service.ts":  testhelpers.TestData.Service,
//	    "empty/":            "",
//	})
func NewSourceTree(t testing.TB, parent, name string, files map[string]string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), parent, name)
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("failed to create source root: %v", err)
	}
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// WriteFile writes content to root/rel, creating parent directories. A rel
// ending in "/" creates a directory instead.
func WriteFile(t testing.TB, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if rel != "" && rel[len(rel)-1] == '/' {
		if err := os.MkdirAll(path, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", rel, err)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// NewSiblingRoots creates two roots sharing one temp parent, for
// multi-root tests: <tmp>/<project>/frontend/src and <tmp>/<project>/backend/src
// would be NewSiblingRoots(t, "frontend", "backend", "src").
func NewSiblingRoots(t testing.TB, first, second, leaf string) (string, string) {
	t.Helper()

	base := t.TempDir()
	a := filepath.Join(base, first, leaf)
	b := filepath.Join(base, second, leaf)
	for _, dir := range []string{a, b} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create root %s: %v", dir, err)
		}
	}
	return a, b
}
