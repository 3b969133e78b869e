// Package extract locates the textual definition of a named function or
// method in source lines without parsing them.
//
// The declaration is the first line matching one of a fixed set of anchored
// patterns. Leading comments and decorators are absorbed upward. The body
// ends where brace balance returns to zero, or, before any brace, on a line
// that looks like a single statement. Braces inside strings and comments are
// counted like any other; that inaccuracy is accepted.
package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/lps/internal/debug"
)

// Options selects which leading lines belong to a definition
type Options struct {
	IncludeComments   bool
	IncludeDecorators bool
}

// Result is an extracted definition. Lines are 1-based and inclusive; a miss
// has Found false, empty Content and zero positions.
type Result struct {
	Found     bool   `json:"found"`
	Content   string `json:"content"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Patterns returns the declaration patterns for name. name is matched
// literally.
func Patterns(name string) []*regexp.Regexp {
	n := regexp.QuoteMeta(name)
	return []*regexp.Regexp{
		regexp.MustCompile(`^\s*async\s+` + n + `\s*\(`),
		regexp.MustCompile(`^\s*` + n + `\s*\(`),
		regexp.MustCompile(`^\s*(private|public|protected)\s+(async\s+)?` + n + `\s*\(`),
		regexp.MustCompile(`^\s*(export\s+)?(async\s+)?function\s+` + n + `\s*\(`),
		regexp.MustCompile(`^\s*(export\s+)?const\s+` + n + `\s*=`),
		regexp.MustCompile(`^\s*` + n + `\s*:`),
	}
}

// Extract finds the first declaration of name in lines and returns its full
// definition
func Extract(lines []string, name string, opts Options) Result {
	patterns := Patterns(name)

	for i, line := range lines {
		if !matchesAny(patterns, line) {
			continue
		}

		start := leadingStart(lines, i, opts)
		end := bodyEnd(lines, i)
		debug.LogExtract("%s: declaration at line %d, definition %d-%d\n", name, i+1, start+1, end+1)

		return Result{
			Found:     true,
			Content:   strings.Join(lines[start:end+1], "\n"),
			StartLine: start + 1,
			EndLine:   end + 1,
		}
	}

	return Result{}
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// leadingStart walks upward from the declaration at index i over blank
// lines and the comment or decorator lines opts allows, and returns the
// index of the topmost absorbed line
func leadingStart(lines []string, i int, opts Options) int {
	start := i
	if !opts.IncludeComments && !opts.IncludeDecorators {
		return start
	}

	for j := i - 1; j >= 0; j-- {
		prev := strings.TrimSpace(lines[j])
		switch {
		case prev == "":
			continue
		case opts.IncludeComments && IsCommentLine(prev):
			start = j
		case opts.IncludeDecorators && IsDecoratorLine(prev):
			start = j
		default:
			return start
		}
	}
	return start
}

// bodyEnd scans downward from the declaration at index i and returns the
// index of the definition's last line
func bodyEnd(lines []string, i int) int {
	balance := 0
	opened := false
	end := i

	for j := i; j < len(lines); j++ {
		line := lines[j]
		for _, ch := range line {
			switch ch {
			case '{':
				balance++
				opened = true
			case '}':
				balance--
			}
		}

		end = j
		if opened && balance == 0 {
			break
		}
		if !opened && IsSingleStatement(line) {
			break
		}
	}
	return end
}

// IsCommentLine reports whether a trimmed line is part of a comment
func IsCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasSuffix(trimmed, "*/")
}

// IsDecoratorLine reports whether a trimmed line is a decorator
func IsDecoratorLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

// IsSingleStatement reports whether a line that has not opened a block ends
// the definition: an arrow form or a statement terminated by ';'
func IsSingleStatement(line string) bool {
	return strings.Contains(line, "=>") || strings.HasSuffix(strings.TrimRight(line, " \t\r"), ";")
}
