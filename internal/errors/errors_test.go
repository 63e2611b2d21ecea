// Package apperrors provides tests for application error types.
package apperrors

import (
	"errors"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "mask has wrong length"},
			expected: "mask has wrong length",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("length %d is not a power of two", 6),
			expected: "length 6 is not a power of two",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var cfgErr ConfigError
				if !errors.As(tt.err, &cfgErr) {
					t.Error("expected error to be a ConfigError")
				}
			}
		})
	}
}

func TestUnsupportedOperationError(t *testing.T) {
	t.Parallel()
	err := UnsupportedOperationError{Op: "mul", Operand: "string"}
	want := `unsupported ring operation "mul" on operand string`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "mask", Message: "must have length 2N-1"}
	want := `validation error for "mask": must have length 2N-1`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("wraps non-nil error", func(t *testing.T) {
		t.Parallel()
		base := NewConfigError("bad mask")
		wrapped := WrapError(base, "compiling size %d", 8)
		if wrapped == nil {
			t.Fatal("expected non-nil wrapped error")
		}
		if !errors.Is(wrapped, base) {
			t.Error("wrapped error should match the base error via errors.Is")
		}
		want := "compiling size 8: bad mask"
		if wrapped.Error() != want {
			t.Errorf("expected %q, got %q", want, wrapped.Error())
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		if WrapError(nil, "context") != nil {
			t.Error("expected nil for nil input")
		}
	})
}
