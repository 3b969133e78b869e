// Package walker enumerates the files under a source root.
//
// Traversal is depth-first in filesystem enumeration order. Names in the
// IgnoreSet are skipped at every level, so an ignored directory hides its
// whole subtree. A directory that cannot be read contributes nothing and is
// reported on the diagnostic sink; the rest of the listing is unaffected.
package walker

import (
	"io/fs"
	"path/filepath"

	"github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/pkg/pathutil"
)

// IgnoreSet holds entry names excluded from every traversal level
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from names
func NewIgnoreSet(names []string) IgnoreSet {
	s := make(IgnoreSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is ignored. A nil set ignores nothing.
func (s IgnoreSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Options configures a Walker
type Options struct {
	FileSystem FileSystem // RealFileSystem when nil
	Ignore     []string
	Sink       debug.Sink
}

type Walker struct {
	fs     FileSystem
	ignore IgnoreSet
	sink   debug.Sink
}

func New(opts Options) *Walker {
	return &Walker{
		fs:     OrReal(opts.FileSystem),
		ignore: NewIgnoreSet(opts.Ignore),
		sink:   debug.OrNoOp(opts.Sink),
	}
}

// FileSystem returns the filesystem the walker reads through
func (w *Walker) FileSystem() FileSystem {
	return w.fs
}

// Ignored reports whether name is in the walker's IgnoreSet
func (w *Walker) Ignored(name string) bool {
	return w.ignore.Contains(name)
}

// Entries lists dir without ignored names. Errors are returned unreported.
func (w *Walker) Entries(dir string) ([]fs.DirEntry, error) {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	kept := entries[:0]
	for _, e := range entries {
		if !w.ignore.Contains(e.Name()) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// ListFiles returns every non-directory entry under root as a root-relative,
// forward-slash path. The listing is recomputed on every call.
func (w *Walker) ListFiles(root string) []string {
	var files []string
	w.collect(root, "", &files)
	debug.LogWalk("listed %d files under %s\n", len(files), root)
	return files
}

func (w *Walker) collect(dir, rel string, files *[]string) {
	entries, err := w.Entries(dir)
	if err != nil {
		w.sink.Errorf("Error reading directory %s: %v", dir, err)
		return
	}

	for _, e := range entries {
		childRel := pathutil.JoinSlash(rel, e.Name())
		if e.IsDir() {
			w.collect(filepath.Join(dir, e.Name()), childRel, files)
			continue
		}
		*files = append(*files, childRel)
	}
}
