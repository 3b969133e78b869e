package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	lpserrors "github.com/standardbeagle/lps/internal/errors"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// All problems are reported together.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if cfg == nil {
		return lpserrors.NewConfigError("config", "", errors.New("configuration is nil"))
	}

	v.setSmartDefaults(cfg)

	var errs []error
	errs = append(errs, v.validateRoots(cfg.Roots)...)

	if cfg.Search.MaxResults < 0 {
		errs = append(errs, lpserrors.NewConfigError("search.max_results", fmt.Sprint(cfg.Search.MaxResults),
			errors.New("cannot be negative")))
	}
	for _, ext := range cfg.Search.FileTypes {
		if strings.TrimSpace(ext) == "" {
			errs = append(errs, lpserrors.NewConfigError("search.file_types", ext, errors.New("empty extension")))
		}
	}
	if cfg.Batch.MaxFiles < 0 {
		errs = append(errs, lpserrors.NewConfigError("batch.max_files", fmt.Sprint(cfg.Batch.MaxFiles),
			errors.New("cannot be negative")))
	}
	if cfg.Structure.Depth < 0 {
		errs = append(errs, lpserrors.NewConfigError("structure.depth", fmt.Sprint(cfg.Structure.Depth),
			errors.New("cannot be negative")))
	}

	switch cfg.Mode {
	case ModeProduction, ModeDevelopment:
	default:
		errs = append(errs, lpserrors.NewConfigError("mode", cfg.Mode,
			fmt.Errorf("must be %q or %q", ModeProduction, ModeDevelopment)))
	}

	switch cfg.Registry.DuplicatePrefix {
	case DuplicateLastWins, DuplicateError:
	default:
		errs = append(errs, lpserrors.NewConfigError("registry.duplicate_prefix", cfg.Registry.DuplicatePrefix,
			fmt.Errorf("must be %q or %q", DuplicateLastWins, DuplicateError)))
	}

	return lpserrors.NewMultiError(errs).ErrorOrNil()
}

// validateRoots requires at least one non-empty root; every non-empty root
// must be absolute. Existence is not required.
func (v *Validator) validateRoots(roots []string) []error {
	var errs []error
	nonEmpty := 0
	for _, root := range roots {
		if root == "" {
			continue
		}
		nonEmpty++
		if !filepath.IsAbs(root) {
			errs = append(errs, lpserrors.NewConfigError("roots", root, errors.New("root must be an absolute path")))
		}
	}
	if nonEmpty == 0 {
		errs = append(errs, lpserrors.NewConfigError("roots", "", errors.New("at least one root directory is required")))
	}
	return errs
}

// setSmartDefaults fills fields a partial config left unset
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Ignore == nil {
		cfg.Ignore = append([]string(nil), DefaultIgnore...)
	}
	if cfg.Search.FileTypes == nil {
		cfg.Search.FileTypes = append([]string(nil), DefaultFileTypes...)
	}
	if cfg.Batch.Ignore == nil {
		cfg.Batch.Ignore = append([]string(nil), DefaultBatchIgnore...)
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeProduction
	}
	if cfg.Registry.DuplicatePrefix == "" {
		cfg.Registry.DuplicatePrefix = DuplicateLastWins
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
