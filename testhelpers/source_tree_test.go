package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceTree(t *testing.T) {
	root := NewSourceTree(t, "backend", "src", map[string]string{
		"main.ts":          "bootstrap();\n",
		"users/service.ts": TestData.Service,
		"empty/":           "",
	})

	assert.Equal(t, "src", filepath.Base(root))
	assert.Equal(t, "backend", filepath.Base(filepath.Dir(root)))

	content, err := os.ReadFile(filepath.Join(root, "main.ts"))
	require.NoError(t, err)
	assert.Equal(t, "bootstrap();\n", string(content))

	info, err := os.Stat(filepath.Join(root, "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(root, "users", "service.ts"))
	assert.NoError(t, err)
}

func TestNewSiblingRoots(t *testing.T) {
	a, b := NewSiblingRoots(t, "frontend", "backend", "src")

	assert.Equal(t, filepath.Dir(filepath.Dir(a)), filepath.Dir(filepath.Dir(b)))
	assert.DirExists(t, a)
	assert.DirExists(t, b)
}
