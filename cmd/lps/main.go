package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/standardbeagle/lps/internal/config"
	"github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/internal/mcp"
	"github.com/standardbeagle/lps/internal/navigator"
	"github.com/standardbeagle/lps/internal/version"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "lps",
		Usage:                  "Read-only navigation of local source roots for AI assistants",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml)",
				Value:   config.DefaultKDLFile,
			},
			&cli.StringSliceFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Source root directory, repeatable (replaces configured roots)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "production or development (overrides config)",
			},
			&cli.BoolFlag{
				Name:   "debug-log",
				Usage:  "Write debug output to a file under the temp directory",
				Hidden: true,
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug-log") {
				path, err := debug.InitDebugLogFile()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.ErrWriter, "Debug log: %s\n", path)
				return nil
			}
			if debug.IsDebugEnabled() {
				debug.SetDebugOutput(c.App.ErrWriter)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve the navigation tools over MCP on stdin/stdout",
				Action: mcpCommand,
			},
			{
				Name:    "files",
				Aliases: []string{"ls"},
				Usage:   "List every file of every root as prefixed paths",
				Action:  filesCommand,
			},
			{
				Name:      "read",
				Usage:     "Print a file",
				ArgsUsage: "<[prefix]/path>",
				Action:    readCommand,
			},
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "Search file contents across every root",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Extension filter, repeatable (e.g. --type .ts --type .vue)",
					},
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"m"},
						Usage:   "Maximum number of matches (default from config)",
					},
					&cli.BoolFlag{
						Name:    "case-sensitive",
						Aliases: []string{"C"},
						Usage:   "Match case",
					},
					&cli.BoolFlag{
						Name:    "regex",
						Aliases: []string{"e"},
						Usage:   "Treat the query as a regular expression",
					},
					&cli.IntFlag{
						Name:  "context",
						Usage: "Lines of context kept around each match",
					},
				},
				Action: searchCommand,
			},
			{
				Name:      "glob",
				Aliases:   []string{"g"},
				Usage:     "Print every file matching glob patterns under every root",
				ArgsUsage: "<pattern>...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-files",
						Usage: "Maximum number of files (default from config)",
					},
				},
				Action: globCommand,
			},
			{
				Name:    "structure",
				Aliases: []string{"tree"},
				Usage:   "Render directory trees and file statistics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Prefix filter: frontend, backend or all",
						Value: "all",
					},
					&cli.IntFlag{
						Name:    "depth",
						Aliases: []string{"d"},
						Usage:   "Maximum tree depth (default from config)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Tree format: text, json, compact",
						Value:   "text",
					},
				},
				Action: structureCommand,
			},
			{
				Name:      "extract",
				Aliases:   []string{"def"},
				Usage:     "Print a function definition",
				ArgsUsage: "<[prefix]/path> <function>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-comments",
						Usage: "Omit the comment block above the definition",
					},
					&cli.BoolFlag{
						Name:  "no-decorators",
						Usage: "Omit decorators above the definition",
					},
				},
				Action: extractCommand,
			},
			{
				Name:      "section",
				Usage:     "Print a line range of a file",
				ArgsUsage: "<[prefix]/path> <start> <end>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-line-numbers",
						Usage: "Print lines without numbers",
					},
				},
				Action: sectionCommand,
			},
			{
				Name:   "roots",
				Usage:  "Show the prefix registry",
				Action: rootsCommand,
			},
			{
				Name:  "config",
				Usage: "Configuration management",
				Subcommands: []*cli.Command{
					{
						Name:    "show",
						Aliases: []string{"s"},
						Usage:   "Show the effective configuration",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "format",
								Aliases: []string{"f"},
								Usage:   "Output format: toml, table",
								Value:   "table",
							},
						},
						Action: configShowCommand,
					},
					{
						Name:    "validate",
						Aliases: []string{"v"},
						Usage:   "Validate the effective configuration",
						Action:  configValidateCommand,
					},
				},
			},
			{
				Name:  "version",
				Usage: "Print detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					return nil
				},
			},
		},
		Action: mcpCommand,
	}
}

// loadConfig loads the config file and applies --root and --mode
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if roots := c.StringSlice("root"); len(roots) > 0 {
		cfg.Roots = make([]string, 0, len(roots))
		for _, root := range roots {
			abs, err := filepath.Abs(root)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
			}
			cfg.Roots = append(cfg.Roots, abs)
		}
	}
	if mode := c.String("mode"); mode != "" {
		cfg.Mode = mode
	}

	return cfg, nil
}

// openNavigator validates cfg and builds a navigator. Missing roots are
// reported on logger and stay registered.
func openNavigator(cfg *config.Config, logger *debug.DiagnosticLogger, opts navigator.Options) (*navigator.Navigator, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, root := range cfg.MissingRoots() {
		logger.Warnf("root %s is not an existing directory", root)
	}

	opts.Sink = logger
	return navigator.New(cfg, opts)
}

// runNavigator runs fn against a navigator that logs to stderr and prints
// the result text
func runNavigator(c *cli.Context, opts navigator.Options, fn func(ctx context.Context, nav *navigator.Navigator) (string, error)) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := debug.NewDiagnosticLogger(false, "")
	defer logger.Close()

	nav, err := openNavigator(cfg, logger, opts)
	if err != nil {
		return err
	}

	text, err := fn(c.Context, nav)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(c.App.Writer)
	}
	return nil
}

func mcpCommand(c *cli.Context) error {
	// stdout carries the protocol
	debug.SetMCPMode(true)

	cfg, err := loadConfig(c)
	if err != nil {
		return debug.Fatal("failed to load config: %v", err)
	}
	logger := debug.NewDiagnosticLogger(true, cfg.Log.Dir)
	defer logger.Close()

	nav, err := openNavigator(cfg, logger, navigator.Options{})
	if err != nil {
		logger.Errorf("startup failed: %v", err)
		return err
	}
	server, err := mcp.NewServer(nav, logger)
	if err != nil {
		return debug.Fatal("failed to create MCP server: %v", err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := server.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("MCP server error: %v", err)
		return err
	}
	return nil
}

func filesCommand(c *cli.Context) error {
	return runNavigator(c, navigator.Options{}, func(ctx context.Context, nav *navigator.Navigator) (string, error) {
		return nav.ListFiles(ctx)
	})
}

func readCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("read requires exactly one file path")
	}
	return runNavigator(c, navigator.Options{}, func(ctx context.Context, nav *navigator.Navigator) (string, error) {
		return nav.ReadFile(ctx, c.Args().First()), nil
	})
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("search requires a query")
	}
	return runNavigator(c, navigator.Options{}, func(ctx context.Context, nav *navigator.Navigator) (string, error) {
		req := navigator.SearchRequest{
			Query:         c.Args().First(),
			MaxResults:    nav.Config().Search.MaxResults,
			CaseSensitive: c.Bool("case-sensitive"),
			UseRegex:      c.Bool("regex"),
			ContextLines:  c.Int("context"),
		}
		if c.IsSet("type") {
			req.FileTypes = c.StringSlice("type")
		}
		if c.IsSet("max") {
			req.MaxResults = c.Int("max")
		}
		return nav.Search(ctx, req)
	})
}

func globCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("glob requires at least one pattern")
	}
	return runNavigator(c, navigator.Options{}, func(ctx context.Context, nav *navigator.Navigator) (string, error) {
		maxFiles := nav.Config().Batch.MaxFiles
		if c.IsSet("max-files") {
			maxFiles = c.Int("max-files")
		}
		return nav.ReadMultiple(ctx, c.Args().Slice(), maxFiles)
	})
}

func structureCommand(c *cli.Context) error {
	switch c.String("format") {
	case "text", "json", "compact":
	default:
		return fmt.Errorf("unknown format %q: use text, json or compact", c.String("format"))
	}
	return runNavigator(c, navigator.Options{TreeFormat: c.String("format")}, func(ctx context.Context, nav *navigator.Navigator) (string, error) {
		depth := nav.Config().Structure.Depth
		if c.IsSet("depth") {
			depth = c.Int("depth")
		}
		return nav.AnalyzeStructure(ctx, c.String("scope"), depth)
	})
}

func extractCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("extract requires a file path and a function name")
	}
	return runNavigator(c, navigator.Options{}, func(ctx context.Context, nav *navigator.Navigator) (string, error) {
		return nav.ExtractFunction(ctx, navigator.ExtractRequest{
			FilePath:          c.Args().Get(0),
			FunctionName:      c.Args().Get(1),
			IncludeComments:   !c.Bool("no-comments"),
			IncludeDecorators: !c.Bool("no-decorators"),
		}), nil
	})
}

func sectionCommand(c *cli.Context) error {
	if c.NArg() != 3 {
		return errors.New("section requires a file path, a start line and an end line")
	}
	start, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid start line %q: %w", c.Args().Get(1), err)
	}
	end, err := strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return fmt.Errorf("invalid end line %q: %w", c.Args().Get(2), err)
	}
	return runNavigator(c, navigator.Options{}, func(ctx context.Context, nav *navigator.Navigator) (string, error) {
		return nav.ReadSection(ctx, navigator.SectionRequest{
			FilePath:        c.Args().Get(0),
			StartLine:       start,
			EndLine:         end,
			ShowLineNumbers: !c.Bool("no-line-numbers"),
		}), nil
	})
}
