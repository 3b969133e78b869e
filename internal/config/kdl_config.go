package config

import (
	"fmt"
	"log"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// applyKDL overlays a .lps.kdl document onto cfg:
//
//	roots "/work/web/frontend/src" "/work/web/backend/src"
//	ignore "node_modules" ".git" "dist"
//	mode "development"
//	registry {
//	    duplicate_prefix "error"
//	}
//	search {
//	    max_results 100
//	    file_types ".ts" ".vue"
//	}
//	batch {
//	    max_files 40
//	}
//	structure {
//	    depth 4
//	}
//	log {
//	    dir "/var/log/lps"
//	}
//
// List nodes (roots, ignore, file_types, batch ignore) replace the current
// value. They also accept a block with one entry per line, either a bare
// string or "- value".
func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "roots":
			cfg.Roots = collectStringArgs(n)
		case "ignore":
			cfg.Ignore = collectStringArgs(n)
		case "mode":
			if s, ok := firstStringArg(n); ok {
				cfg.Mode = s
			}
		case "registry":
			for _, cn := range n.Children {
				assignSimpleString(cn, "duplicate_prefix", func(v string) { cfg.Registry.DuplicatePrefix = v })
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxResults = v
					}
				case "file_types":
					cfg.Search.FileTypes = collectStringArgs(cn)
				}
			}
		case "batch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_files":
					if v, ok := firstIntArg(cn); ok {
						cfg.Batch.MaxFiles = v
					}
				case "ignore":
					cfg.Batch.Ignore = collectStringArgs(cn)
				}
			}
		case "structure":
			for _, cn := range n.Children {
				if nodeName(cn) == "depth" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Structure.Depth = v
					}
				}
			}
		case "log":
			for _, cn := range n.Children {
				assignSimpleString(cn, "dir", func(v string) { cfg.Log.Dir = v })
			}
		default:
			log.Printf("WARNING: unknown node '%s' in KDL config ignored", nodeName(n))
		}
	}

	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		log.Printf("WARNING: invalid integer value for '%s' in KDL config, got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

// collectStringArgs reads inline arguments, or for the block form the child
// nodes, where a bare string child is its own node name.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
