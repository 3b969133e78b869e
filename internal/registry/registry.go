// Package registry maps opaque bracketed prefixes such as [backend/src] to
// the absolute source roots they stand for, and resolves prefixed paths
// against them.
//
// A Registry is built once from configuration and never changes. Entries keep
// configuration order; every multi-root operation walks them in that order.
package registry

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/lps/internal/config"
	"github.com/standardbeagle/lps/internal/debug"
	lpserrors "github.com/standardbeagle/lps/internal/errors"
	"github.com/standardbeagle/lps/internal/security"
)

// prefixedPathPattern splits "[parent/dir]/rest". The prefix is the shortest
// bracketed token followed by '/'; rest may span lines.
var prefixedPathPattern = regexp.MustCompile(`(?s)^(\[.*?\])/(.*)$`)

// maxSuggestionDistance bounds the edit distance for "did you mean" hints
const maxSuggestionDistance = 3

// Entry is one registered root
type Entry struct {
	Prefix string
	Root   string
}

// Resolved is a prefixed path that passed every check
type Resolved struct {
	Prefix   string
	Root     string
	Relative string // as supplied after the prefix
	Abs      string // absolute filesystem path, inside Root
}

type Registry struct {
	entries []Entry
	index   map[string]int
}

// PrefixFor synthesizes the prefix of root from its last two path
// components. A root directly below the filesystem root has an empty parent
// component.
func PrefixFor(root string) string {
	clean := filepath.Clean(root)
	self := filepath.Base(clean)
	parentDir := filepath.Dir(clean)
	parent := filepath.Base(parentDir)
	if parentDir == clean || parent == string(filepath.Separator) || parent == "." {
		parent = ""
	}
	if self == string(filepath.Separator) {
		self = ""
	}
	return "[" + parent + "/" + self + "]"
}

// New builds a registry from roots in order. Empty roots are skipped. When
// two roots synthesize the same prefix the later root replaces the earlier
// one in its original slot and a warning goes to sink, unless policy is
// config.DuplicateError, in which case New fails.
func New(roots []string, policy string, sink debug.Sink) (*Registry, error) {
	sink = debug.OrNoOp(sink)
	r := &Registry{index: make(map[string]int, len(roots))}

	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		prefix := PrefixFor(root)

		if i, ok := r.index[prefix]; ok {
			previous := r.entries[i].Root
			if policy == config.DuplicateError {
				return nil, lpserrors.NewConfigError("roots", root,
					fmt.Errorf("prefix %s already registered for %s", prefix, previous))
			}
			sink.Errorf("duplicate prefix %s: %s replaces %s", prefix, root, previous)
			r.entries[i].Root = root
			continue
		}

		r.index[prefix] = len(r.entries)
		r.entries = append(r.entries, Entry{Prefix: prefix, Root: root})
	}

	return r, nil
}

// Entries returns a copy of the registered roots in registry order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered roots
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup returns the root registered for prefix
func (r *Registry) Lookup(prefix string) (string, bool) {
	i, ok := r.index[prefix]
	if !ok {
		return "", false
	}
	return r.entries[i].Root, true
}

// Scoped returns the entries whose prefix contains scope. An empty scope or
// "all" selects every entry.
func (r *Registry) Scoped(scope string) []Entry {
	if scope == "" || scope == "all" {
		return r.Entries()
	}
	var out []Entry
	for _, e := range r.entries {
		if strings.Contains(e.Prefix, scope) {
			out = append(out, e)
		}
	}
	return out
}

// Resolve validates a prefixed path and returns its filesystem location.
// Errors are *errors.PathError of type MalformedPath, UnknownPrefix or
// EscapesRoot.
func (r *Registry) Resolve(prefixedPath string) (Resolved, error) {
	m := prefixedPathPattern.FindStringSubmatch(prefixedPath)
	if m == nil {
		return Resolved{}, lpserrors.NewMalformedPathError(prefixedPath)
	}
	prefix, rel := m[1], m[2]

	root, ok := r.Lookup(prefix)
	if !ok {
		err := lpserrors.NewUnknownPrefixError(prefixedPath, prefix)
		if s := r.suggest(prefix); s != "" {
			err = err.WithSuggestion(s)
		}
		return Resolved{}, err
	}

	abs, err := security.ResolveWithin(root, rel)
	if err != nil || !security.Contains(root, abs) {
		return Resolved{}, lpserrors.NewEscapesRootError(prefixedPath, prefix)
	}

	return Resolved{Prefix: prefix, Root: root, Relative: rel, Abs: abs}, nil
}

// suggest returns the registered prefix closest to prefix, or "" when none
// is within maxSuggestionDistance
func (r *Registry) suggest(prefix string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, e := range r.entries {
		d := edlib.LevenshteinDistance(prefix, e.Prefix)
		if d < bestDist {
			best, bestDist = e.Prefix, d
		}
	}
	return best
}

// Display joins a prefix and a root-relative path the way every listing
// shows it
func Display(prefix, rel string) string {
	return prefix + "/" + rel
}
