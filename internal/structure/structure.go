// Package structure summarizes a source root: a depth-bounded directory tree
// and file-type statistics from an independent full-depth pass.
package structure

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/internal/walker"
)

// Kind distinguishes tree nodes
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Node is one entry of the directory tree. Directory nodes always carry a
// (possibly empty) Children slice; file nodes carry Extension.
type Node struct {
	Name      string  `json:"name"`
	Kind      Kind    `json:"type"`
	Extension string  `json:"extension,omitempty"`
	Children  []*Node `json:"children,omitempty"`
}

// Stats aggregates file-type counters over a whole root
type Stats struct {
	TSFiles     int `json:"tsFiles"`
	JSFiles     int `json:"jsFiles"`
	Components  int `json:"components"`
	Services    int `json:"services"`
	Directories int `json:"directories"`
}

// Analyzer builds trees and statistics through a walker, sharing its
// IgnoreSet and filesystem
type Analyzer struct {
	walker *walker.Walker
	sink   debug.Sink
}

func NewAnalyzer(w *walker.Walker, sink debug.Sink) *Analyzer {
	return &Analyzer{walker: w, sink: debug.OrNoOp(sink)}
}

// Analyze builds the tree rooted at root. Recursion stops when the current
// depth reaches maxDepth: that directory is dropped entirely, so maxDepth <= 0
// yields nil. An unreadable directory is kept with no children.
func (a *Analyzer) Analyze(root string, maxDepth int) *Node {
	return a.analyze(root, maxDepth, 0)
}

func (a *Analyzer) analyze(dir string, maxDepth, depth int) *Node {
	if depth >= maxDepth {
		return nil
	}

	node := &Node{Name: filepath.Base(dir), Kind: KindDirectory, Children: []*Node{}}

	entries, err := a.walker.Entries(dir)
	if err != nil {
		a.sink.Errorf("Error analyzing directory %s: %v", dir, err)
		return node
	}

	for _, e := range entries {
		if e.IsDir() {
			if child := a.analyze(filepath.Join(dir, e.Name()), maxDepth, depth+1); child != nil {
				node.Children = append(node.Children, child)
			}
			continue
		}
		node.Children = append(node.Children, &Node{
			Name:      e.Name(),
			Kind:      KindFile,
			Extension: Ext(e.Name()),
		})
	}

	return node
}

// Stats counts files and subdirectories under root at every depth. The root
// itself is not counted as a directory. Unreadable branches contribute
// nothing.
func (a *Analyzer) Stats(root string) Stats {
	var s Stats
	a.count(root, &s)
	return s
}

func (a *Analyzer) count(dir string, s *Stats) {
	entries, err := a.walker.Entries(dir)
	if err != nil {
		debug.LogWalk("stats skipped %s: %v\n", dir, err)
		return
	}

	for _, e := range entries {
		if e.IsDir() {
			s.Directories++
			a.count(filepath.Join(dir, e.Name()), s)
			continue
		}
		classify(e.Name(), s)
	}
}

func classify(name string, s *Stats) {
	ext := Ext(name)
	lower := strings.ToLower(name)

	switch ext {
	case ".ts", ".tsx":
		s.TSFiles++
	case ".js", ".jsx":
		s.JSFiles++
	}
	if strings.Contains(lower, "component") || ext == ".tsx" || ext == ".jsx" {
		s.Components++
	}
	if strings.Contains(lower, "service") {
		s.Services++
	}
}

// Ext returns the extension of name from its last dot. Unlike filepath.Ext,
// a leading dot does not start an extension, so ".env" has none.
func Ext(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	i := strings.LastIndexByte(trimmed, '.')
	if i < 0 {
		return ""
	}
	return trimmed[i:]
}
