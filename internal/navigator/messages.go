package navigator

import (
	stderrors "errors"
	"fmt"
	"strings"

	lpserrors "github.com/standardbeagle/lps/internal/errors"
)

// Result framing
const (
	listHeader      = "Project files:\n---\n"
	batchHeader     = "Batch file contents:\n"
	structureHeader = "Project structure analysis:\n"
	majorRuleWidth  = 50
	minorRuleWidth  = 30
)

var (
	majorRule = strings.Repeat("=", majorRuleWidth)
	minorRule = strings.Repeat("-", minorRuleWidth)
)

// ErrorText converts a path or range error into the message returned to the
// caller. filePath is the prefixed path as the caller supplied it.
func ErrorText(err error, filePath string) string {
	switch lpserrors.KindOf(err) {
	case lpserrors.ErrorTypeMalformedPath:
		return "Error: malformed file path, a prefix such as '[backend/src]/' is required."
	case lpserrors.ErrorTypeUnknownPrefix:
		var pathErr *lpserrors.PathError
		if !stderrors.As(err, &pathErr) {
			return "Error: unknown path prefix."
		}
		msg := fmt.Sprintf("Error: unknown path prefix '%s'.", pathErr.Prefix)
		if pathErr.Suggestion != "" {
			msg += fmt.Sprintf(" Did you mean '%s'?", pathErr.Suggestion)
		}
		return msg
	case lpserrors.ErrorTypeEscapesRoot:
		return "Error: access to files outside the project directory is forbidden."
	case lpserrors.ErrorTypeFileNotFound:
		return fmt.Sprintf("Error: file '%s' not found.", filePath)
	case lpserrors.ErrorTypeInvalidRange:
		var rangeErr *lpserrors.RangeError
		if stderrors.As(err, &rangeErr) {
			return fmt.Sprintf("Error: start line %d is greater than end line %d", rangeErr.Start, rangeErr.End)
		}
	}
	return fmt.Sprintf("Error reading file '%s'.", filePath)
}

// NoMatchesText is the search result when nothing matched
func NoMatchesText(query string) string {
	return fmt.Sprintf("No code containing \"%s\" found", query)
}

// FunctionNotFoundText is the extraction result when no declaration matched
func FunctionNotFoundText(name, filePath string) string {
	return fmt.Sprintf("Function '%s' not found in '%s'", name, filePath)
}
