package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Run modes
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Duplicate prefix policies for the path registry
const (
	DuplicateLastWins = "last-wins"
	DuplicateError    = "error"
)

// Default config file names, looked up in the working directory and in $HOME
const (
	DefaultKDLFile  = ".lps.kdl"
	DefaultTOMLFile = ".lps.toml"
)

// Defaults shared by the loaders, the validator and the MCP argument decoder
const (
	DefaultMaxResults = 50
	DefaultMaxFiles   = 20
	DefaultDepth      = 3
)

// DefaultIgnore is the IgnoreSet: names skipped at every traversal level
var DefaultIgnore = []string{"node_modules", ".git", ".idea", "dist", "build", ".DS_Store"}

// DefaultFileTypes are the extensions searched when a request names none
var DefaultFileTypes = []string{".ts", ".tsx", ".js", ".jsx"}

// DefaultBatchIgnore are the globs excluded from batch (glob) reads
var DefaultBatchIgnore = []string{"**/node_modules/**", "**/.git/**"}

type Config struct {
	Version   int
	Roots     []string // absolute source roots, registry order
	Registry  Registry
	Ignore    []string
	Search    Search
	Batch     Batch
	Structure Structure
	Mode      string
	Log       Log

	// Source is the config file that was applied last ("" when none)
	Source string
}

type Registry struct {
	DuplicatePrefix string // "last-wins" or "error"
}

type Search struct {
	FileTypes  []string // default extension filter
	MaxResults int      // default result cap
}

type Batch struct {
	MaxFiles int      // default file cap for glob reads
	Ignore   []string // doublestar globs excluded from glob reads
}

type Structure struct {
	Depth int // default tree depth
}

type Log struct {
	Dir string // diagnostic log directory for MCP mode
}

// Default returns the built-in configuration. It has no roots.
func Default() *Config {
	return &Config{
		Version: 1,
		Roots:   []string{},
		Registry: Registry{
			DuplicatePrefix: DuplicateLastWins,
		},
		Ignore: append([]string(nil), DefaultIgnore...),
		Search: Search{
			FileTypes:  append([]string(nil), DefaultFileTypes...),
			MaxResults: DefaultMaxResults,
		},
		Batch: Batch{
			MaxFiles: DefaultMaxFiles,
			Ignore:   append([]string(nil), DefaultBatchIgnore...),
		},
		Structure: Structure{
			Depth: DefaultDepth,
		},
		Mode: ModeProduction,
	}
}

// IsDevelopment reports whether per-file failures should be surfaced on the
// diagnostic channel
func (c *Config) IsDevelopment() bool {
	return c != nil && c.Mode == ModeDevelopment
}

// MissingRoots returns configured roots that are not existing directories.
// They stay registered; traversal reports them on the diagnostic channel.
func (c *Config) MissingRoots() []string {
	var missing []string
	for _, root := range c.Roots {
		if root == "" {
			continue
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			missing = append(missing, root)
		}
	}
	return missing
}

// Load builds the effective configuration:
// defaults, then ~/.lps.kdl, then the project config file, then .env and
// LPS_* environment variables. configPath may name a .kdl or .toml file; when
// it is the default .lps.kdl and absent, .lps.toml beside it is tried.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if homeDir, err := os.UserHomeDir(); err == nil {
		if _, err := applyFile(cfg, filepath.Join(homeDir, DefaultKDLFile)); err != nil {
			return nil, err
		}
	}

	if configPath == "" {
		configPath = DefaultKDLFile
	}
	applied, err := applyFile(cfg, configPath)
	if err != nil {
		return nil, err
	}
	if !applied && filepath.Base(configPath) == DefaultKDLFile {
		if _, err := applyFile(cfg, filepath.Join(filepath.Dir(configPath), DefaultTOMLFile)); err != nil {
			return nil, err
		}
	}

	if err := LoadDotEnv(filepath.Join(filepath.Dir(configPath), ".env")); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	ApplyEnv(cfg)

	return cfg, nil
}

// applyFile overlays a config file onto cfg. A missing file is not an error.
func applyFile(cfg *Config, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = applyTOML(cfg, content)
	} else {
		err = applyKDL(cfg, string(content))
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	cfg.Roots = resolveRoots(cfg.Roots, filepath.Dir(absPath))
	cfg.Source = absPath
	return true, nil
}

// resolveRoots makes relative roots absolute against baseDir. Empty entries
// are preserved; the registry skips them.
func resolveRoots(roots []string, baseDir string) []string {
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		switch {
		case root == "":
			out = append(out, root)
		case filepath.IsAbs(root):
			out = append(out, filepath.Clean(root))
		default:
			out = append(out, filepath.Join(baseDir, root))
		}
	}
	return out
}
