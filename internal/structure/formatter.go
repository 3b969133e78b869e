package structure

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Glyphs prefixed to tree lines
const (
	DirectoryGlyph = "📁"
	FileGlyph      = "📄"
)

// TreeFormatter renders directory trees
type TreeFormatter struct {
	options FormatterOptions
}

// FormatterOptions controls tree formatting
type FormatterOptions struct {
	Format string // "text", "json", "compact"
	Indent string // Indentation per depth level
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(options FormatterOptions) *TreeFormatter {
	if options.Indent == "" {
		options.Indent = "  "
	}
	return &TreeFormatter{options: options}
}

// Format renders a tree. A nil tree renders as the empty string in text
// and compact formats and as "null" in JSON.
func (tf *TreeFormatter) Format(tree *Node) string {
	switch tf.options.Format {
	case "json":
		return tf.formatJSON(tree)
	case "compact":
		return tf.formatCompact(tree)
	default:
		var sb strings.Builder
		tf.formatNode(&sb, tree, 0)
		return sb.String()
	}
}

// formatNode writes one line per node: indent, glyph, name
func (tf *TreeFormatter) formatNode(sb *strings.Builder, node *Node, depth int) {
	if node == nil {
		return
	}

	glyph := FileGlyph
	if node.Kind == KindDirectory {
		glyph = DirectoryGlyph
	}
	sb.WriteString(strings.Repeat(tf.options.Indent, depth))
	sb.WriteString(glyph)
	sb.WriteString(" ")
	sb.WriteString(node.Name)
	sb.WriteString("\n")

	for _, child := range node.Children {
		tf.formatNode(sb, child, depth+1)
	}
}

// formatCompact lists the root's direct children on one line
func (tf *TreeFormatter) formatCompact(tree *Node) string {
	if tree == nil {
		return ""
	}

	parts := make([]string, 0, len(tree.Children))
	for _, child := range tree.Children {
		name := child.Name
		if child.Kind == KindDirectory {
			name += "/"
		}
		parts = append(parts, name)
	}
	return tree.Name + ": " + strings.Join(parts, " ")
}

func (tf *TreeFormatter) formatJSON(tree *Node) string {
	data, err := json.MarshalIndent(tree, "", tf.options.Indent)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// FormatStats renders the statistics block that follows each tree
func FormatStats(s Stats) string {
	var sb strings.Builder
	sb.WriteString("\n📊 Statistics:\n")
	fmt.Fprintf(&sb, "  - TypeScript files: %d\n", s.TSFiles)
	fmt.Fprintf(&sb, "  - JavaScript files: %d\n", s.JSFiles)
	fmt.Fprintf(&sb, "  - Component files: %d\n", s.Components)
	fmt.Fprintf(&sb, "  - Service files: %d\n", s.Services)
	fmt.Fprintf(&sb, "  - Total directories: %d\n", s.Directories)
	return sb.String()
}
