package search

import (
	"strconv"
	"strings"
)

// RenderContext renders lines[index-n .. index+n], clamped to the slice,
// one per line as "<marker><1-based line>: <text>". The matched line gets
// MatchMarker, the others ContextMarker.
func RenderContext(lines []string, index, n int) string {
	if index < 0 || index >= len(lines) {
		return ""
	}
	start := max(0, index-n)
	end := min(len(lines)-1, index+n)

	var sb strings.Builder
	for i := start; i <= end; i++ {
		if i > start {
			sb.WriteByte('\n')
		}
		if i == index {
			sb.WriteString(MatchMarker)
		} else {
			sb.WriteString(ContextMarker)
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(": ")
		sb.WriteString(lines[i])
	}
	return sb.String()
}
