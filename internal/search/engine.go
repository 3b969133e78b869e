// Package search scans the files of every registered root line by line for
// a literal or regular-expression query.
//
// Roots are visited in registry order and files in walker order. The result
// cap stops both loops as soon as it is reached. A file that cannot be
// stat'ed or read is skipped; in development mode the failure is reported on
// the diagnostic sink.
package search

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/internal/registry"
	"github.com/standardbeagle/lps/internal/walker"
)

// Options describes one search request
type Options struct {
	Query         string
	FileTypes     []string // path suffixes; nil means DefaultFileTypes
	MaxResults    int      // <= 0 returns nothing
	CaseSensitive bool
	UseRegex      bool
	ContextLines  int
}

// DefaultFileTypes is used when Options.FileTypes is nil
var DefaultFileTypes = []string{".ts", ".tsx", ".js", ".jsx"}

// Result is one matching line. Content is the trimmed line. Context holds
// the rendered window when ContextLines > 0; the tool output does not use it.
type Result struct {
	File       string `json:"file"` // prefixed path
	LineNumber int    `json:"lineNumber"`
	Content    string `json:"content"`
	Context    string `json:"context,omitempty"`
}

type Engine struct {
	walker      *walker.Walker
	sink        debug.Sink
	development bool
}

// NewEngine creates a search engine. development enables per-file failure
// diagnostics.
func NewEngine(w *walker.Walker, sink debug.Sink, development bool) *Engine {
	return &Engine{walker: w, sink: debug.OrNoOp(sink), development: development}
}

// Search runs opts against roots. A query that does not compile returns a
// *errors.SearchError. Cancellation is checked between roots and files and
// returns the results gathered so far with ctx.Err().
func (e *Engine) Search(ctx context.Context, roots []registry.Entry, opts Options) ([]Result, error) {
	re, err := CompilePattern(opts.Query, opts.CaseSensitive, opts.UseRegex)
	if err != nil {
		return nil, err
	}

	fileTypes := opts.FileTypes
	if fileTypes == nil {
		fileTypes = DefaultFileTypes
	}

	results := []Result{}
	fsys := e.walker.FileSystem()

	for _, entry := range roots {
		if len(results) >= opts.MaxResults {
			break
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		for _, file := range e.walker.ListFiles(entry.Root) {
			if len(results) >= opts.MaxResults {
				break
			}
			if !hasAnySuffix(file, fileTypes) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return results, err
			}

			fullPath := filepath.Join(entry.Root, filepath.FromSlash(file))
			info, err := fsys.Stat(fullPath)
			if err != nil {
				e.fileFailed(file, err)
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			content, err := fsys.ReadFile(fullPath)
			if err != nil {
				e.fileFailed(file, err)
				continue
			}

			lines := strings.Split(string(content), "\n")
			for i, line := range lines {
				if len(results) >= opts.MaxResults {
					break
				}
				if !re.MatchString(line) {
					continue
				}
				r := Result{
					File:       registry.Display(entry.Prefix, file),
					LineNumber: i + 1,
					Content:    strings.TrimSpace(line),
				}
				if opts.ContextLines > 0 {
					r.Context = RenderContext(lines, i, opts.ContextLines)
				}
				results = append(results, r)
			}
		}
	}

	debug.LogSearch("query %q: %d results\n", opts.Query, len(results))
	return results, nil
}

func (e *Engine) fileFailed(file string, err error) {
	if e.development {
		e.sink.Errorf("Error searching file %s: %v", file, err)
	}
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
