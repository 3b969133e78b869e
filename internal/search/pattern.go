package search

import (
	"regexp"

	lpserrors "github.com/standardbeagle/lps/internal/errors"
)

// CompilePattern builds the line matcher for a query. Literal queries have
// every metacharacter escaped, so "a.b" only matches "a.b". Matching is
// case-insensitive unless caseSensitive is set. No multiline flag is used;
// callers test one line at a time.
func CompilePattern(query string, caseSensitive, useRegex bool) (*regexp.Regexp, error) {
	pattern := query
	if !useRegex {
		pattern = regexp.QuoteMeta(query)
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, lpserrors.NewSearchError(query, err)
	}
	return re, nil
}
