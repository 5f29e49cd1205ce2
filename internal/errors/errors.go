package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes used by the vsort command.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic failure (bad input, I/O error).
	ExitErrorTimeout  = 2   // The benchmark or calibration run timed out.
	ExitErrorMismatch = 3   // Two sorting strategies produced different output.
	ExitErrorConfig   = 4   // Invalid flags, environment or profile.
	ExitErrorCanceled = 130 // Interrupted (e.g., SIGINT).
)

// ConfigError represents a user configuration error such as an invalid flag
// value or an unreadable calibration profile.
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
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SortError wraps a failure raised while running a sorting strategy, for
// example a panicking task inside the parallel orchestrator. The dispatcher
// never surfaces it to library callers; it is recovered by falling back to a
// sequential engine.
type SortError struct {
	// Strategy names the engine or phase that failed (e.g., "parallel-merge").
	Strategy string
	// Cause is the underlying error.
	Cause error
}

// Error returns the strategy and the cause message.
func (e SortError) Error() string {
	if e.Strategy == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

// Unwrap returns the original cause, allowing errors.Is and errors.As to
// inspect the chain.
func (e SortError) Unwrap() error { return e.Cause }

// TimeoutError represents a bench or calibration run that exceeded its time
// limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was abandoned.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
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

// MemoryError reports that a scratch allocation would exceed the configured
// memory budget. It is the engine's notion of an allocation failure: radix,
// stable merge and parallel merge paths degrade to in-place algorithms when
// they receive one.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes still free in the budget.
	Available uint64
	// Limit is the configured budget in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// IsMemoryError reports whether err, or any error in its chain, is a
// MemoryError.
func IsMemoryError(err error) bool {
	var memErr MemoryError
	return errors.As(err, &memErr)
}

// MismatchError reports that a sorting strategy produced output that differs
// from the reference sort of the same input.
type MismatchError struct {
	// Strategy is the strategy whose output differed.
	Strategy string
	// Pattern names the generated input.
	Pattern string
	// Index is the first position that differed.
	Index int
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("strategy %q diverged from the reference on %s input at index %d", e.Strategy, e.Pattern, e.Index)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
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

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned by the command layer onto a process exit
// code. A nil error maps to ExitSuccess.
func ExitCode(err error) int {
	var (
		cfgErr     ConfigError
		validErr   ValidationError
		timeoutErr TimeoutError
		mismatch   MismatchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.As(err, &cfgErr), errors.As(err, &validErr):
		return ExitErrorConfig
	case errors.As(err, &mismatch):
		return ExitErrorMismatch
	default:
		return ExitErrorGeneric
	}
}
