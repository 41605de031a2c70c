package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeAnchorNotFound, "marker missing")
	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	var customErr *E
	if !errors.As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}

	if customErr.Code != CodeAnchorNotFound {
		t.Errorf("Expected code %s, got %s", CodeAnchorNotFound, customErr.Code)
	}

	if got, want := err.Error(), "ANCHOR_NOT_FOUND: marker missing"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeMissingVariable, "variable %q is not answered", "component_name")
	if got, want := err.Error(), `MISSING_VARIABLE: variable "component_name" is not answered`; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("no such file")
	wrappedErr := Wrap(CodeFileNotFound, "append", originalErr)

	var customErr *E
	if !errors.As(wrappedErr, &customErr) {
		t.Fatal("Wrapped error should be of type *E")
	}

	if customErr.Op != "append" {
		t.Errorf("Expected operation %q, got %q", "append", customErr.Op)
	}

	if customErr.Err != originalErr {
		t.Error("Wrapped error should contain original error")
	}

	if got, want := wrappedErr.Error(), "FILE_NOT_FOUND: append: no such file"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWrapf(t *testing.T) {
	originalErr := errors.New("exists")
	wrappedErr := Wrapf(CodeAlreadyExists, "create_files", originalErr, "target %s", "a.rs")

	if got, want := wrappedErr.Error(), "ALREADY_EXISTS: create_files: target a.rs: exists"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "custom error with code",
			err:      New(CodeDuplicateName, "test"),
			expected: CodeDuplicateName,
		},
		{
			name:     "wrapped error with code",
			err:      Wrap(CodeUnknownGenerator, "op", errors.New("test")),
			expected: CodeUnknownGenerator,
		},
		{
			name:     "coded error wrapped by fmt",
			err:      fmt.Errorf("action 2: %w", New(CodeAnchorNotFound, "x")),
			expected: CodeAnchorNotFound,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := CodeOf(tt.err)
			if code != tt.expected {
				t.Errorf("Expected code %q, got %q", tt.expected, code)
			}
			if tt.expected != "" && !IsCode(tt.err, tt.expected) {
				t.Errorf("IsCode(%v, %q) should be true", tt.err, tt.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(CodeInternal, "operation", originalErr)

	if !Is(wrappedErr, originalErr) {
		t.Error("Is should find original error in chain")
	}
	if errors.Unwrap(wrappedErr) != originalErr {
		t.Error("Unwrap should return original error")
	}
}

func TestBuilder(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := Build(CodeInternal).
		WithOp("patch").
		WithErr(originalErr).
		WithMsgf("rewrite %s", "src/lib.rs").
		WithDetails("path", "src/lib.rs").
		Err()

	var customErr *E
	if !As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}

	if customErr.Op != "patch" {
		t.Errorf("Expected op %q, got %q", "patch", customErr.Op)
	}

	if customErr.Msg != "rewrite src/lib.rs" {
		t.Errorf("Expected msg %q, got %q", "rewrite src/lib.rs", customErr.Msg)
	}

	if customErr.Err != originalErr {
		t.Error("Builder should wrap original error")
	}

	if len(customErr.Details) != 2 {
		t.Errorf("Expected 2 details, got %d", len(customErr.Details))
	}
}
