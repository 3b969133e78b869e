package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/standardbeagle/lps/internal/config"
	lpserrors "github.com/standardbeagle/lps/internal/errors"
	"github.com/standardbeagle/lps/internal/registry"

	"github.com/urfave/cli/v2"
)

func rootsCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reg, err := registry.New(cfg.Roots, cfg.Registry.DuplicatePrefix, nil)
	if err != nil {
		return err
	}

	missing := make(map[string]bool)
	for _, root := range cfg.MissingRoots() {
		missing[root] = true
	}

	w := c.App.Writer
	for _, e := range reg.Entries() {
		marker := ""
		if missing[e.Root] {
			marker = "  (missing)"
		}
		fmt.Fprintf(w, "%-30s %s%s\n", e.Prefix, e.Root, marker)
	}
	return nil
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	switch c.String("format") {
	case "toml":
		out, err := config.MarshalTOML(cfg)
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(out)
		return err
	case "table":
		displayConfigTable(c.App.Writer, cfg)
		return nil
	default:
		return fmt.Errorf("unknown format %q: use toml or table", c.String("format"))
	}
}

func configValidateCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		fmt.Fprintf(c.App.Writer, "❌ Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Fprintln(c.App.Writer, "❌ Configuration validation failed:")
		var multi *lpserrors.MultiError
		if errors.As(err, &multi) {
			for _, e := range multi.Errors {
				fmt.Fprintf(c.App.Writer, "  - %v\n", e)
			}
		} else {
			fmt.Fprintf(c.App.Writer, "  - %v\n", err)
		}
		return err
	}

	fmt.Fprintln(c.App.Writer, "✅ Configuration is valid")
	for _, root := range cfg.MissingRoots() {
		fmt.Fprintf(c.App.Writer, "⚠️  Root %s is not an existing directory\n", root)
	}
	return nil
}

func displayConfigTable(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Local Project Sync Configuration\n")
	fmt.Fprintf(w, "================================\n\n")

	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintf(w, "Source:              %s\n", source)
	fmt.Fprintf(w, "Mode:                %s\n\n", cfg.Mode)

	fmt.Fprintf(w, "Roots (%d):\n", len(cfg.Roots))
	for _, root := range cfg.Roots {
		fmt.Fprintf(w, "  %s  %s\n", registry.PrefixFor(root), root)
	}
	fmt.Fprintf(w, "  Duplicate prefix:  %s\n\n", cfg.Registry.DuplicatePrefix)

	fmt.Fprintf(w, "Search Settings:\n")
	fmt.Fprintf(w, "  Max results:       %d\n", cfg.Search.MaxResults)
	fmt.Fprintf(w, "  File types:        %s\n\n", strings.Join(cfg.Search.FileTypes, " "))

	fmt.Fprintf(w, "Batch Settings:\n")
	fmt.Fprintf(w, "  Max files:         %d\n", cfg.Batch.MaxFiles)
	fmt.Fprintf(w, "  Ignore:            %s\n\n", strings.Join(cfg.Batch.Ignore, " "))

	fmt.Fprintf(w, "Structure depth:     %d\n", cfg.Structure.Depth)
	fmt.Fprintf(w, "Ignored names:       %s\n", strings.Join(cfg.Ignore, " "))
	if cfg.Log.Dir != "" {
		fmt.Fprintf(w, "Log directory:       %s\n", cfg.Log.Dir)
	}
}
