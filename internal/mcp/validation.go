package mcp

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ValidationError reports an argument the tool cannot run with
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Code    string      `json:"code"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrorCode represents standardized validation error codes
type ValidationErrorCode string

const (
	ErrCodeRequired      ValidationErrorCode = "REQUIRED"
	ErrCodeInvalidFormat ValidationErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidEnum   ValidationErrorCode = "INVALID_ENUM"
)

// Scopes accepted by analyze_project_structure
var validScopes = []string{"frontend", "backend", "all"}

func requiredError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: field + " is required",
		Code:    string(ErrCodeRequired),
	}
}

// decodeArguments unmarshals tool arguments into params. Absent arguments
// decode as an empty object.
func decodeArguments(raw json.RawMessage, params interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, params); err != nil {
		return &ValidationError{
			Field:   "arguments",
			Message: fmt.Sprintf("invalid parameters: %v", err),
			Code:    string(ErrCodeInvalidFormat),
		}
	}
	return nil
}

func validateScope(scope string) error {
	if slices.Contains(validScopes, scope) {
		return nil
	}
	return &ValidationError{
		Field:   "scope",
		Message: fmt.Sprintf("must be one of %v", validScopes),
		Value:   scope,
		Code:    string(ErrCodeInvalidEnum),
	}
}
