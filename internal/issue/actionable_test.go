// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "start application"},
			expected: "failed to start application",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "copy update archive",
				Resource:  "upd.asar -> app.asar",
			},
			expected: "failed to copy update archive: upd.asar -> app.asar",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "copy update archive",
				Resource:  "upd.asar -> app.asar",
				Cause:     errors.New("file is locked"),
			},
			expected: "failed to copy update archive: upd.asar -> app.asar: file is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("copy failed")
	wrapped := &ActionableError{
		Operation: "copy update archive",
		Cause:     fmt.Errorf("%w: %w", sentinel, fs.ErrPermission),
	}

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should find the sentinel in the cause")
	}
	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("errors.Is should find the OS error in the cause")
	}

	noCause := &ActionableError{Operation: "test"}
	if noCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
	if noCause.Hint() != "" {
		t.Errorf("Hint() without suggestions = %q, want empty", noCause.Hint())
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("some/path").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}

	cause := errors.New("boom")
	got := NewErrorContext().
		WithOperation("copy update archive").
		WithResource("a -> b").
		WithSuggestion("Close the application").
		WithSuggestion("Check disk space").
		Wrap(cause).
		Build()
	if got == nil {
		t.Fatal("Build() returned nil, want error")
	}
	if got.Operation != "copy update archive" || got.Resource != "a -> b" {
		t.Errorf("Build() = %+v", got)
	}
	if got.Hint() != "Close the application; Check disk space" {
		t.Errorf("Hint() = %q", got.Hint())
	}
	if !errors.Is(got, cause) {
		t.Error("Build() result should wrap the cause")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("denied")
	err := WrapWithContext(cause, "create directory", "/opt/app")
	if err.Error() != "failed to create directory: /opt/app: denied" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("WrapWithContext should preserve the cause")
	}
}
