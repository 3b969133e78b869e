package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv
const (
	EnvRoots  = "LPS_ROOTS"   // OS path-list separated roots; replaces configured roots
	EnvMode   = "LPS_MODE"    // production | development
	EnvLogDir = "LPS_LOG_DIR" // diagnostic log directory
)

// LoadDotEnv loads a .env file into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overlays LPS_* environment variables onto cfg
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvRoots); ok && strings.TrimSpace(v) != "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		cfg.Roots = resolveRoots(filepath.SplitList(v), cwd)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMode)); v != "" {
		cfg.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogDir)); v != "" {
		cfg.Log.Dir = v
	}
}
