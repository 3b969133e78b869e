package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlFile mirrors .lps.toml. Pointer and nil-slice fields distinguish
// "absent" from "set to zero" so only present keys override.
//
//	roots = ["/work/web/frontend/src", "/work/web/backend/src"]
//	mode = "development"
//
//	[search]
//	max_results = 100
//	file_types = [".ts", ".vue"]
type tomlFile struct {
	Roots    []string `toml:"roots"`
	Ignore   []string `toml:"ignore"`
	Mode     *string  `toml:"mode"`
	Registry struct {
		DuplicatePrefix *string `toml:"duplicate_prefix"`
	} `toml:"registry"`
	Search struct {
		MaxResults *int     `toml:"max_results"`
		FileTypes  []string `toml:"file_types"`
	} `toml:"search"`
	Batch struct {
		MaxFiles *int     `toml:"max_files"`
		Ignore   []string `toml:"ignore"`
	} `toml:"batch"`
	Structure struct {
		Depth *int `toml:"depth"`
	} `toml:"structure"`
	Log struct {
		Dir *string `toml:"dir"`
	} `toml:"log"`
}

func applyTOML(cfg *Config, content []byte) error {
	var f tomlFile
	if err := toml.Unmarshal(content, &f); err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	if f.Roots != nil {
		cfg.Roots = f.Roots
	}
	if f.Ignore != nil {
		cfg.Ignore = f.Ignore
	}
	if f.Mode != nil {
		cfg.Mode = *f.Mode
	}
	if f.Registry.DuplicatePrefix != nil {
		cfg.Registry.DuplicatePrefix = *f.Registry.DuplicatePrefix
	}
	if f.Search.MaxResults != nil {
		cfg.Search.MaxResults = *f.Search.MaxResults
	}
	if f.Search.FileTypes != nil {
		cfg.Search.FileTypes = f.Search.FileTypes
	}
	if f.Batch.MaxFiles != nil {
		cfg.Batch.MaxFiles = *f.Batch.MaxFiles
	}
	if f.Batch.Ignore != nil {
		cfg.Batch.Ignore = f.Batch.Ignore
	}
	if f.Structure.Depth != nil {
		cfg.Structure.Depth = *f.Structure.Depth
	}
	if f.Log.Dir != nil {
		cfg.Log.Dir = *f.Log.Dir
	}
	return nil
}

// MarshalTOML renders cfg in .lps.toml form. The output loads back to the
// same settings.
func MarshalTOML(cfg *Config) ([]byte, error) {
	var f tomlFile
	f.Roots = cfg.Roots
	f.Ignore = cfg.Ignore
	f.Mode = &cfg.Mode
	f.Registry.DuplicatePrefix = &cfg.Registry.DuplicatePrefix
	f.Search.MaxResults = &cfg.Search.MaxResults
	f.Search.FileTypes = cfg.Search.FileTypes
	f.Batch.MaxFiles = &cfg.Batch.MaxFiles
	f.Batch.Ignore = cfg.Batch.Ignore
	f.Structure.Depth = &cfg.Structure.Depth
	if cfg.Log.Dir != "" {
		f.Log.Dir = &cfg.Log.Dir
	}

	out, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode TOML config: %w", err)
	}
	return out, nil
}
