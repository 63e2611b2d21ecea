package apperrors

import "fmt"

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess      = 0 // Indicates successful execution.
	ExitErrorGeneric = 1 // Indicates a generic error.
	ExitErrorConfig  = 4 // Indicates a configuration error.
)

// ConfigError represents a structurally invalid compilation request, such as
// index sequences of mismatched length, a length that is not a power of two,
// or an output mask of the wrong size. It indicates that no plan can be built
// from the given configuration; the error is terminal and never retried.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// UnsupportedOperationError reports a ring operation attempted on operands
// the ring implementation cannot handle. It is produced by dynamically typed
// ring adapters at execution time and surfaced to the caller unchanged; the
// plan itself never catches or translates it.
type UnsupportedOperationError struct {
	// Op is the arithmetic operation that failed ("add", "sub", "neg", "mul").
	Op string
	// Operand describes the offending operand (typically its Go type).
	Operand string
}

// Error returns a formatted message describing the unsupported operation.
func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported ring operation %q on operand %s", e.Op, e.Operand)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
