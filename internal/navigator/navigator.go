// Package navigator implements the seven read-only navigation operations.
// Each one resolves paths through the registry, delegates to the walker,
// search engine, extractor, batch reader or structure analyzer, and returns
// a single result text.
//
// Path, read and range failures become result text. The returned error is
// reserved for cancellation. Operational failures go to the diagnostic sink
// and never into the result.
package navigator

import (
	"context"
	"fmt"
	"strings"

	"github.com/standardbeagle/lps/internal/batch"
	"github.com/standardbeagle/lps/internal/config"
	"github.com/standardbeagle/lps/internal/debug"
	lpserrors "github.com/standardbeagle/lps/internal/errors"
	"github.com/standardbeagle/lps/internal/extract"
	"github.com/standardbeagle/lps/internal/registry"
	"github.com/standardbeagle/lps/internal/search"
	"github.com/standardbeagle/lps/internal/structure"
	"github.com/standardbeagle/lps/internal/walker"
)

// SearchRequest mirrors the search_code_content arguments
type SearchRequest struct {
	Query         string
	FileTypes     []string // nil means the configured default set
	MaxResults    int
	CaseSensitive bool
	UseRegex      bool
	ContextLines  int
}

// ExtractRequest mirrors the extract_function_definition arguments
type ExtractRequest struct {
	FilePath          string
	FunctionName      string
	IncludeComments   bool
	IncludeDecorators bool
}

// SectionRequest mirrors the read_file_section arguments
type SectionRequest struct {
	FilePath        string
	StartLine       int
	EndLine         int
	ShowLineNumbers bool
}

type Navigator struct {
	cfg       *config.Config
	registry  *registry.Registry
	walker    *walker.Walker
	analyzer  *structure.Analyzer
	formatter *structure.TreeFormatter
	engine    *search.Engine
	batch     *batch.Reader
	sink      debug.Sink
}

// Options overrides the collaborators New would build
type Options struct {
	FileSystem walker.FileSystem
	Sink       debug.Sink
	TreeFormat string // structure tree rendering: "text" (default), "json" or "compact"
}

// New builds a navigator and its registry from cfg. It fails only when the
// registry rejects the configured roots.
func New(cfg *config.Config, opts Options) (*Navigator, error) {
	sink := debug.OrNoOp(opts.Sink)

	reg, err := registry.New(cfg.Roots, cfg.Registry.DuplicatePrefix, sink)
	if err != nil {
		return nil, err
	}

	w := walker.New(walker.Options{FileSystem: opts.FileSystem, Ignore: cfg.Ignore, Sink: sink})
	return &Navigator{
		cfg:       cfg,
		registry:  reg,
		walker:    w,
		analyzer:  structure.NewAnalyzer(w, sink),
		formatter: structure.NewTreeFormatter(structure.FormatterOptions{Format: opts.TreeFormat}),
		engine:    search.NewEngine(w, sink, cfg.IsDevelopment()),
		batch:     batch.NewReader(batch.Options{FileSystem: opts.FileSystem, Ignore: cfg.Batch.Ignore, Sink: sink}),
		sink:      sink,
	}, nil
}

// Registry returns the prefix registry
func (n *Navigator) Registry() *registry.Registry {
	return n.registry
}

// Config returns the configuration the navigator was built from
func (n *Navigator) Config() *config.Config {
	return n.cfg
}

// ListFiles lists every file of every root as prefixed paths, grouped by
// root in registry order
func (n *Navigator) ListFiles(ctx context.Context) (string, error) {
	var sb strings.Builder
	sb.WriteString(listHeader)

	for _, entry := range n.registry.Entries() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		files := n.walker.ListFiles(entry.Root)
		if len(files) == 0 {
			continue
		}
		for i, f := range files {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(registry.Display(entry.Prefix, f))
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// ReadFile returns the full content of a prefixed path
func (n *Navigator) ReadFile(ctx context.Context, filePath string) string {
	content, err := n.read(filePath)
	if err != nil {
		return ErrorText(err, filePath)
	}
	return fmt.Sprintf("Content of file '%s':\n---\n%s", filePath, content)
}

// Search scans every root for req.Query
func (n *Navigator) Search(ctx context.Context, req SearchRequest) (string, error) {
	fileTypes := req.FileTypes
	if fileTypes == nil {
		fileTypes = n.cfg.Search.FileTypes
	}

	results, err := n.engine.Search(ctx, n.registry.Entries(), search.Options{
		Query:         req.Query,
		FileTypes:     fileTypes,
		MaxResults:    req.MaxResults,
		CaseSensitive: req.CaseSensitive,
		UseRegex:      req.UseRegex,
		ContextLines:  req.ContextLines,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		n.sink.Errorf("Search for %q failed: %v", req.Query, err)
		return NoMatchesText(req.Query), nil
	}
	if len(results) == 0 {
		return NoMatchesText(req.Query), nil
	}

	entries := make([]string, 0, len(results))
	for _, r := range results {
		entries = append(entries, fmt.Sprintf("%s:%d\n%s", r.File, r.LineNumber, r.Content))
	}
	return fmt.Sprintf("Found %d matches:\n---\n", len(results)) + strings.Join(entries, "\n\n"), nil
}

// ReadMultiple reads every file matching patterns under every root, up to
// maxFiles readable files
func (n *Navigator) ReadMultiple(ctx context.Context, patterns []string, maxFiles int) (string, error) {
	files, err := n.batch.Read(ctx, n.registry.Entries(), patterns, maxFiles)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(batchHeader)
	sb.WriteString(majorRule)
	sb.WriteByte('\n')

	for _, f := range files {
		if f.Err != nil {
			fmt.Fprintf(&sb, "\nUnable to read: %s\n", f.Path)
			continue
		}
		fmt.Fprintf(&sb, "\n📄 %s\n", f.Display)
		sb.WriteString(minorRule)
		sb.WriteByte('\n')
		sb.WriteString(f.Content)
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// AnalyzeStructure renders a depth-bounded tree and full-depth statistics
// for every root whose prefix matches scope
func (n *Navigator) AnalyzeStructure(ctx context.Context, scope string, depth int) (string, error) {
	var sb strings.Builder
	sb.WriteString(structureHeader)
	sb.WriteString(majorRule)
	sb.WriteByte('\n')

	for _, entry := range n.registry.Scoped(scope) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprintf(&sb, "\n📁 %s\n", entry.Prefix)
		sb.WriteString(minorRule)
		sb.WriteByte('\n')
		sb.WriteString(n.formatter.Format(n.analyzer.Analyze(entry.Root, depth)))
		sb.WriteString(structure.FormatStats(n.analyzer.Stats(entry.Root)))
	}

	return sb.String(), nil
}

// ExtractFunction returns the definition of a named function in a file
func (n *Navigator) ExtractFunction(ctx context.Context, req ExtractRequest) string {
	content, err := n.read(req.FilePath)
	if err != nil {
		return ErrorText(err, req.FilePath)
	}

	res := extract.Extract(strings.Split(content, "\n"), req.FunctionName, extract.Options{
		IncludeComments:   req.IncludeComments,
		IncludeDecorators: req.IncludeDecorators,
	})
	if !res.Found {
		return FunctionNotFoundText(req.FunctionName, req.FilePath)
	}

	return fmt.Sprintf("Definition of function '%s' in '%s':\nLines %d-%d\n---\n%s",
		req.FunctionName, req.FilePath, res.StartLine, res.EndLine, res.Content)
}

// ReadSection returns lines StartLine..EndLine of a file. The range is
// clamped to the file; a start beyond the clamped end is an error.
func (n *Navigator) ReadSection(ctx context.Context, req SectionRequest) string {
	content, err := n.read(req.FilePath)
	if err != nil {
		return ErrorText(err, req.FilePath)
	}

	lines := strings.Split(content, "\n")
	start, end := req.StartLine, req.EndLine
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ErrorText(lpserrors.NewRangeError(start, end), req.FilePath)
	}

	selected := lines[start-1 : end]
	body := strings.Join(selected, "\n")
	if req.ShowLineNumbers {
		numbered := make([]string, len(selected))
		for i, line := range selected {
			numbered[i] = fmt.Sprintf("%d: %s", start+i, line)
		}
		body = strings.Join(numbered, "\n")
	}

	return fmt.Sprintf("Content of file '%s' lines %d-%d:\n---\n%s", req.FilePath, start, end, body)
}

// read resolves and reads a prefixed path. Read failures are reported on
// the sink as well as returned.
func (n *Navigator) read(filePath string) (string, error) {
	res, err := n.registry.Resolve(filePath)
	if err != nil {
		return "", err
	}

	data, err := n.walker.FileSystem().ReadFile(res.Abs)
	if err != nil {
		fileErr := lpserrors.NewFileError(filePath, err)
		n.sink.Errorf("%s", ErrorText(fileErr, filePath))
		return "", fileErr
	}
	return string(data), nil
}
