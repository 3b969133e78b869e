// Package pathutil converts between host filesystem paths and the
// forward-slash, root-relative form used in everything the server reports.
//
// Roots and resolved files are kept as absolute host paths internally.
// Anything shown to a caller (file listings, batch headers, search hits)
// is relative to its root and uses '/' regardless of the host separator.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToSlash normalizes every separator in p to '/'. Unlike filepath.ToSlash it
// also rewrites backslashes on hosts where '\' is not the separator, so
// listings look the same on every platform.
func ToSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// JoinSlash joins root-relative segments with '/', skipping empty parts
func JoinSlash(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, ToSlash(p))
		}
	}
	return strings.Join(kept, "/")
}
