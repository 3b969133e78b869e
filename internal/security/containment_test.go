package security

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWithin(t *testing.T) {
	root := t.TempDir()

	t.Run("RelativeJoins", func(t *testing.T) {
		got, err := ResolveWithin(root, "app/main.ts")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "app", "main.ts"), got)
	})

	t.Run("DotSegmentsAreCleaned", func(t *testing.T) {
		got, err := ResolveWithin(root, "app/../lib/./x.ts")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "lib", "x.ts"), got)
	})

	t.Run("AbsoluteReplacesRoot", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "elsewhere.ts")
		got, err := ResolveWithin(root, abs)
		require.NoError(t, err)
		assert.Equal(t, abs, got)
	})

	t.Run("EmptyIsRoot", func(t *testing.T) {
		got, err := ResolveWithin(root, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean(root), got)
	})
}

func TestContains(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "a", "b")

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"root itself", root, true},
		{"direct child", filepath.Join(root, "x.ts"), true},
		{"nested child", filepath.Join(root, "deep", "er", "x.ts"), true},
		{"dot-dot prefixed name", filepath.Join(root, "..x.ts"), true},
		{"parent", filepath.Join(base, "a"), false},
		{"sibling with shared prefix", filepath.Join(base, "a", "b-evil", "x"), false},
		{"climb and re-enter", filepath.Join(root, "..", "b", "x.ts"), true},
		{"unrelated absolute", filepath.Join(t.TempDir(), "x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(root, tt.target))
		})
	}
}

func TestResolveThenContainsRejectsEscape(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")

	resolved, err := ResolveWithin(root, "../b-evil/x")
	require.NoError(t, err)
	assert.False(t, Contains(root, resolved))

	resolved, err = ResolveWithin(root, "../../../../etc/passwd")
	require.NoError(t, err)
	assert.False(t, Contains(root, resolved))
}
