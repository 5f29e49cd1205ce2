// Package apperrors defines the structured error types shared by the sorting
// engine and the vsort command: configuration and validation failures, memory
// budget exhaustion, and wrapped sort failures that carry their cause.
//
// Error Wrapping Guidelines:
// Errors are wrapped with fmt.Errorf and %w so callers can inspect them with
// errors.Is and errors.As. Types that hold a cause implement Unwrap.
package apperrors
