package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTOML_FullConfig(t *testing.T) {
	content := `
roots = ["/work/web/frontend/src", "/work/web/backend/src"]
ignore = ["node_modules"]
mode = "development"

[registry]
duplicate_prefix = "error"

[search]
max_results = 7
file_types = [".vue"]

[batch]
max_files = 3
ignore = []

[structure]
depth = 1

[log]
dir = "/tmp/lps"
`
	cfg := Default()
	require.NoError(t, applyTOML(cfg, []byte(content)))

	assert.Equal(t, []string{"/work/web/frontend/src", "/work/web/backend/src"}, cfg.Roots)
	assert.Equal(t, []string{"node_modules"}, cfg.Ignore)
	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, DuplicateError, cfg.Registry.DuplicatePrefix)
	assert.Equal(t, 7, cfg.Search.MaxResults)
	assert.Equal(t, []string{".vue"}, cfg.Search.FileTypes)
	assert.Equal(t, 3, cfg.Batch.MaxFiles)
	assert.Empty(t, cfg.Batch.Ignore)
	assert.Equal(t, 1, cfg.Structure.Depth)
	assert.Equal(t, "/tmp/lps", cfg.Log.Dir)
}

func TestApplyTOML_AbsentKeysKeepDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, applyTOML(cfg, []byte("[structure]\ndepth = 0\n")))

	assert.Equal(t, 0, cfg.Structure.Depth)
	assert.Equal(t, DefaultMaxResults, cfg.Search.MaxResults)
	assert.Equal(t, DefaultIgnore, cfg.Ignore)
}

func TestApplyTOML_ParseError(t *testing.T) {
	err := applyTOML(Default(), []byte("roots = ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML config")
}

func TestMarshalTOML_LoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Roots = []string{"/work/web/frontend/src"}
	cfg.Mode = ModeDevelopment
	cfg.Search.MaxResults = 12

	out, err := MarshalTOML(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "max_results = 12")

	loaded := Default()
	require.NoError(t, applyTOML(loaded, out))
	assert.Equal(t, cfg, loaded)
}
