package security

import (
	"path/filepath"
	"strings"
)

// ResolveWithin resolves rel against root the way a shell would: a relative
// rel is joined onto root, an absolute rel replaces it. The result is an
// absolute, cleaned path and says nothing about containment; see Contains.
func ResolveWithin(root, rel string) (string, error) {
	var joined string
	if filepath.IsAbs(rel) {
		joined = rel
	} else {
		joined = filepath.Join(root, rel)
	}
	return filepath.Abs(joined)
}

// Contains reports whether target is root itself or lies beneath it.
// Both paths are made absolute and compared segment by segment, so a sibling
// such as /a/b-evil is not inside /a/b even though it shares a string prefix.
func Contains(root, target string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
