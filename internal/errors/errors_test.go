package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
)

func TestMalformedPathError(t *testing.T) {
	err := NewMalformedPathError("main.ts")

	if err.Type != ErrorTypeMalformedPath {
		t.Errorf("Expected Type to be ErrorTypeMalformedPath, got %v", err.Type)
	}

	if !errors.Is(err, ErrMalformedPath) {
		t.Errorf("Expected error to match ErrMalformedPath")
	}

	if errors.Is(err, ErrUnknownPrefix) {
		t.Errorf("Malformed path error must not match ErrUnknownPrefix")
	}

	expectedMsg := `malformed prefixed path "main.ts"`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestUnknownPrefixError(t *testing.T) {
	err := NewUnknownPrefixError("[web/src]/a.ts", "[web/src]").WithSuggestion("[web/srcs]")

	if err.Prefix != "[web/src]" {
		t.Errorf("Expected Prefix to be '[web/src]', got %s", err.Prefix)
	}

	if err.Suggestion != "[web/srcs]" {
		t.Errorf("Expected Suggestion to be '[web/srcs]', got %s", err.Suggestion)
	}

	if !errors.Is(err, ErrUnknownPrefix) {
		t.Errorf("Expected error to match ErrUnknownPrefix")
	}
}

func TestEscapesRootError(t *testing.T) {
	err := NewEscapesRootError("[a/b]/../b-evil/x", "[a/b]")

	if !errors.Is(err, ErrEscapesRoot) {
		t.Errorf("Expected error to match ErrEscapesRoot")
	}

	if KindOf(err) != ErrorTypeEscapesRoot {
		t.Errorf("Expected KindOf to be ErrorTypeEscapesRoot, got %v", KindOf(err))
	}
}

func TestFileErrorClassification(t *testing.T) {
	t.Run("NotExist", func(t *testing.T) {
		_, statErr := os.Stat("/definitely/not/here/lps")
		err := NewFileError("[x/y]/missing.ts", statErr)

		if err.Type != ErrorTypeFileNotFound {
			t.Errorf("Expected Type to be ErrorTypeFileNotFound, got %v", err.Type)
		}
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("Expected error to match ErrFileNotFound")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Expected error to unwrap to fs.ErrNotExist")
		}
	})

	t.Run("Other", func(t *testing.T) {
		underlying := errors.New("is a directory")
		err := NewFileError("[x/y]/dir", underlying)

		if err.Type != ErrorTypeReadFailure {
			t.Errorf("Expected Type to be ErrorTypeReadFailure, got %v", err.Type)
		}
		if !errors.Is(err, underlying) {
			t.Errorf("Expected error to unwrap to underlying error")
		}

		expectedMsg := "read_failure for [x/y]/dir: is a directory"
		if err.Error() != expectedMsg {
			t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
		}
	})
}

func TestRangeError(t *testing.T) {
	err := NewRangeError(9, 4)

	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Expected error to match ErrInvalidRange")
	}

	wrapped := fmt.Errorf("section: %w", err)
	if KindOf(wrapped) != ErrorTypeInvalidRange {
		t.Errorf("Expected KindOf to see through wrapping, got %v", KindOf(wrapped))
	}

	expectedMsg := "start line 9 is greater than end line 4"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestSearchError(t *testing.T) {
	underlying := errors.New("missing closing )")
	err := NewSearchError("foo(", underlying)

	if err.Type != ErrorTypeSearch {
		t.Errorf("Expected Type to be ErrorTypeSearch, got %v", err.Type)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := `search failed for pattern "foo(": missing closing )`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestConfigError(t *testing.T) {
	underlying := errors.New("must be absolute")
	err := NewConfigError("roots", "src", underlying)

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "config error for field roots (value src): must be absolute"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestMultiError(t *testing.T) {
	t.Run("FiltersNil", func(t *testing.T) {
		err := NewMultiError([]error{nil, nil})
		if err.ErrorOrNil() != nil {
			t.Errorf("Expected ErrorOrNil to be nil for only nil errors")
		}
		if err.Error() != "no errors" {
			t.Errorf("Expected 'no errors', got %q", err.Error())
		}
	})

	t.Run("Single", func(t *testing.T) {
		first := errors.New("first")
		err := NewMultiError([]error{nil, first})
		if err.Error() != "first" {
			t.Errorf("Expected 'first', got %q", err.Error())
		}
		if !errors.Is(err, first) {
			t.Errorf("Expected multi error to unwrap to first")
		}
	})

	t.Run("Many", func(t *testing.T) {
		err := NewMultiError([]error{errors.New("a"), errors.New("b")})
		if err.ErrorOrNil() == nil {
			t.Errorf("Expected ErrorOrNil to return the error")
		}
		if err.Error() != "2 errors: [a b]" {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("plain")) != "" {
		t.Errorf("Expected empty kind for a foreign error")
	}
	if KindOf(nil) != "" {
		t.Errorf("Expected empty kind for nil")
	}
}
