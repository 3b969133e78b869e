// Package batch reads every file matching a set of glob patterns across all
// registered roots, up to a file cap.
//
// Patterns are relative to each root and use doublestar syntax. Roots are
// visited in registry order, patterns in request order, matches in glob
// order. Only successful reads count toward the cap.
package batch

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/internal/registry"
	"github.com/standardbeagle/lps/internal/security"
	"github.com/standardbeagle/lps/internal/walker"
)

// File is one glob match. Err is set when the match could not be read,
// in which case Content is empty.
type File struct {
	Display string // prefixed, forward-slash path
	Path    string // absolute filesystem path
	Content string
	Err     error
}

// Options configures a Reader
type Options struct {
	FileSystem walker.FileSystem // reads matched files; RealFileSystem when nil
	Ignore     []string          // doublestar patterns dropped from every match list
	Sink       debug.Sink
}

type Reader struct {
	fs     walker.FileSystem
	ignore []string
	sink   debug.Sink
}

func NewReader(opts Options) *Reader {
	return &Reader{
		fs:     walker.OrReal(opts.FileSystem),
		ignore: opts.Ignore,
		sink:   debug.OrNoOp(opts.Sink),
	}
}

// Read expands patterns against every root and reads the matches until
// maxFiles files have been read. A pattern that is malformed or reaches
// outside its root matches nothing and is reported on the sink.
func (r *Reader) Read(ctx context.Context, roots []registry.Entry, patterns []string, maxFiles int) ([]File, error) {
	files := []File{}
	read := 0

	for _, entry := range roots {
		if read >= maxFiles {
			break
		}
		for _, pattern := range patterns {
			if read >= maxFiles {
				break
			}
			if err := ctx.Err(); err != nil {
				return files, err
			}

			for _, match := range r.glob(entry.Root, pattern) {
				if read >= maxFiles {
					break
				}

				f := File{
					Display: registry.Display(entry.Prefix, match),
					Path:    filepath.Join(entry.Root, filepath.FromSlash(match)),
				}
				if !security.Contains(entry.Root, f.Path) {
					r.sink.Errorf("Skipping %s: outside %s", f.Path, entry.Prefix)
					continue
				}
				content, err := r.fs.ReadFile(f.Path)
				if err != nil {
					f.Err = err
					r.sink.Errorf("Unable to read %s: %v", f.Path, err)
				} else {
					f.Content = string(content)
					read++
				}
				files = append(files, f)
			}
		}
	}

	return files, nil
}

// glob returns root-relative, forward-slash matches of pattern under root
func (r *Reader) glob(root, pattern string) []string {
	clean, ok := CleanPattern(pattern)
	if !ok {
		r.sink.Errorf("Error processing pattern %s: pattern leaves the project directory", pattern)
		return nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), clean)
	if err != nil {
		r.sink.Errorf("Error processing pattern %s: %v", pattern, err)
		return nil
	}

	kept := matches[:0]
	for _, m := range matches {
		if !r.ignored(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func (r *Reader) ignored(match string) bool {
	for _, pattern := range r.ignore {
		matched, err := doublestar.Match(pattern, match)
		if err != nil {
			// Bad ignore pattern shouldn't break the read
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// CleanPattern normalizes a root-relative glob to the slash form io/fs
// expects; an empty pattern names the root itself. It reports false when the
// pattern is absolute or climbs out of the root.
func CleanPattern(pattern string) (string, bool) {
	if filepath.IsAbs(pattern) {
		return "", false
	}
	// Backslashes stay: doublestar treats them as escapes
	p := filepath.ToSlash(pattern)
	if strings.HasPrefix(p, "/") {
		return "", false
	}
	p = path.Clean(p)
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return p, true
}
