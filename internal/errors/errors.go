package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"
)

// Error types for local project navigation
type ErrorType string

const (
	// Path resolution errors
	ErrorTypeMalformedPath ErrorType = "malformed_path"
	ErrorTypeUnknownPrefix ErrorType = "unknown_prefix"
	ErrorTypeEscapesRoot   ErrorType = "path_escapes_root"

	// File errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypeReadFailure  ErrorType = "read_failure"

	// Request errors
	ErrorTypeInvalidRange ErrorType = "invalid_range"
	ErrorTypeSearch       ErrorType = "search"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// Sentinels for errors.Is checks. Matching is by ErrorType, so any PathError
// of the same type satisfies errors.Is against the corresponding sentinel.
var (
	ErrMalformedPath = &PathError{Type: ErrorTypeMalformedPath}
	ErrUnknownPrefix = &PathError{Type: ErrorTypeUnknownPrefix}
	ErrEscapesRoot   = &PathError{Type: ErrorTypeEscapesRoot}
	ErrFileNotFound  = &PathError{Type: ErrorTypeFileNotFound}
	ErrReadFailure   = &PathError{Type: ErrorTypeReadFailure}
	ErrInvalidRange  = &RangeError{}
)

// PathError represents a failure to resolve or read a prefixed path
type PathError struct {
	Type       ErrorType
	Path       string // the prefixed path as supplied by the caller
	Prefix     string // bracketed prefix token, when one was parsed
	Suggestion string // closest registered prefix for unknown prefixes
	Underlying error
	Timestamp  time.Time
}

// NewMalformedPathError reports a path that does not carry a [parent/dir]/ prefix
func NewMalformedPathError(path string) *PathError {
	return &PathError{
		Type:      ErrorTypeMalformedPath,
		Path:      path,
		Timestamp: time.Now(),
	}
}

// NewUnknownPrefixError reports a prefix that is not registered
func NewUnknownPrefixError(path, prefix string) *PathError {
	return &PathError{
		Type:      ErrorTypeUnknownPrefix,
		Path:      path,
		Prefix:    prefix,
		Timestamp: time.Now(),
	}
}

// NewEscapesRootError reports a path that resolves outside its root
func NewEscapesRootError(path, prefix string) *PathError {
	return &PathError{
		Type:      ErrorTypeEscapesRoot,
		Path:      path,
		Prefix:    prefix,
		Timestamp: time.Now(),
	}
}

// NewFileError classifies an I/O failure on a resolved path
func NewFileError(path string, err error) *PathError {
	errorType := ErrorTypeReadFailure
	if isNotExist(err) {
		errorType = ErrorTypeFileNotFound
	}

	return &PathError{
		Type:       errorType,
		Path:       path,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithSuggestion attaches a "did you mean" prefix
func (e *PathError) WithSuggestion(prefix string) *PathError {
	e.Suggestion = prefix
	return e
}

// Error implements the error interface
func (e *PathError) Error() string {
	switch e.Type {
	case ErrorTypeMalformedPath:
		return fmt.Sprintf("malformed prefixed path %q", e.Path)
	case ErrorTypeUnknownPrefix:
		return fmt.Sprintf("unknown path prefix %q", e.Prefix)
	case ErrorTypeEscapesRoot:
		return fmt.Sprintf("path %q escapes its root", e.Path)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s for %s: %v", e.Type, e.Path, e.Underlying)
	}
	return fmt.Sprintf("%s for %s", e.Type, e.Path)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *PathError) Unwrap() error {
	return e.Underlying
}

// Is matches any PathError of the same type
func (e *PathError) Is(target error) bool {
	t, ok := target.(*PathError)
	return ok && t.Type == e.Type
}

// RangeError represents a line range whose start lies after its end
type RangeError struct {
	Start     int
	End       int
	Timestamp time.Time
}

// NewRangeError creates a new range error
func NewRangeError(start, end int) *RangeError {
	return &RangeError{
		Start:     start,
		End:       end,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *RangeError) Error() string {
	return fmt.Sprintf("start line %d is greater than end line %d", e.Start, e.End)
}

// Is matches any RangeError
func (e *RangeError) Is(target error) bool {
	_, ok := target.(*RangeError)
	return ok
}

// SearchError represents a search operation error
type SearchError struct {
	Type       ErrorType
	Pattern    string
	Underlying error
	Timestamp  time.Time
}

// NewSearchError creates a new search error
func NewSearchError(pattern string, err error) *SearchError {
	return &SearchError{
		Type:       ErrorTypeSearch,
		Pattern:    pattern,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for pattern %q: %v", e.Pattern, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SearchError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrorOrNil returns nil when no errors were collected
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// KindOf returns the ErrorType carried by err, or "" when err is not one of ours
func KindOf(err error) ErrorType {
	var pathErr *PathError
	if stderrors.As(err, &pathErr) {
		return pathErr.Type
	}
	var rangeErr *RangeError
	if stderrors.As(err, &rangeErr) {
		return ErrorTypeInvalidRange
	}
	var searchErr *SearchError
	if stderrors.As(err, &searchErr) {
		return ErrorTypeSearch
	}
	var configErr *ConfigError
	if stderrors.As(err, &configErr) {
		return ErrorTypeConfig
	}
	return ""
}

func isNotExist(err error) bool {
	return err != nil && stderrors.Is(err, fs.ErrNotExist)
}
