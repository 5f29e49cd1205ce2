package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"plain message", ConfigError{Message: "unknown kind"}, "unknown kind"},
		{"formatted", NewConfigError("invalid value %d for flag %s", 0, "--insertion-threshold"), "invalid value 0 for flag --insertion-threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			var configErr ConfigError
			if !errors.As(tt.err, &configErr) {
				t.Error("expected error to be ConfigError type")
			}
		})
	}
}

func TestSortError(t *testing.T) {
	t.Parallel()
	cause := errors.New("task panicked")

	tests := []struct {
		name     string
		err      SortError
		expected string
	}{
		{"with strategy", SortError{Strategy: "parallel-merge", Cause: cause}, "parallel-merge: task panicked"},
		{"without strategy", SortError{Cause: cause}, "task panicked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("errors.Is should find the cause through SortError")
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "bench", Limit: 30 * time.Second}
	if got, want := err.Error(), `operation "bench" timed out after 30s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "parallel-threshold", Message: "must be greater than zero"}
	if got, want := err.Error(), `validation error for "parallel-threshold": must be greater than zero`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMemoryError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      MemoryError
		expected string
	}{
		{
			name:     "large values",
			err:      MemoryError{Requested: 1073741824, Available: 536870912, Limit: 1073741824},
			expected: "memory error: requested 1073741824 bytes, available 536870912 bytes (limit: 1073741824)",
		},
		{
			name:     "small values",
			err:      MemoryError{Requested: 1024, Available: 512, Limit: 2048},
			expected: "memory error: requested 1024 bytes, available 512 bytes (limit: 2048)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if !IsMemoryError(tt.err) {
				t.Error("IsMemoryError should recognise a bare MemoryError")
			}
		})
	}
}

func TestMismatchError(t *testing.T) {
	t.Parallel()
	err := MismatchError{Strategy: "parallel", Pattern: "few-unique", Index: 42}
	want := `strategy "parallel" diverged from the reference on few-unique input at index 42`
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	t.Parallel()

	t.Run("MemoryError wrapped in SortError", func(t *testing.T) {
		t.Parallel()
		err := SortError{Strategy: "radix", Cause: MemoryError{Requested: 4096, Limit: 2048}}
		if !IsMemoryError(err) {
			t.Error("IsMemoryError should see through SortError")
		}
	})

	t.Run("ValidationError wrapped with WrapError", func(t *testing.T) {
		t.Parallel()
		err := WrapError(ValidationError{Field: "kind", Message: "unknown"}, "config check failed")
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Error("errors.As should find ValidationError through WrapError")
		}
	})

	t.Run("plain error is not a MemoryError", func(t *testing.T) {
		t.Parallel()
		if IsMemoryError(errors.New("boom")) {
			t.Error("IsMemoryError should be false for unrelated errors")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to load profile",
			expectedMsg: "failed to load profile: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "bench timed out",
			expectedMsg: "bench timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("unexpected token"),
			format:      "line %d of %s",
			args:        []any{3, "input.txt"},
			expectedMsg: "line 3 of input.txt: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}
			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}
			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "bench canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), ExitErrorCanceled},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"timeout type", TimeoutError{Operation: "bench", Limit: time.Second}, ExitErrorTimeout},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation", WrapError(ValidationError{Field: "kind"}, "parse"), ExitErrorConfig},
		{"mismatch", WrapError(MismatchError{Strategy: "radix", Pattern: "random", Index: 7}, "bench"), ExitErrorMismatch},
		{"generic", errors.New("io failure"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodesUnique(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorMismatch": ExitErrorMismatch,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}
	seen := make(map[int]string)
	for name, code := range codes {
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share exit code %d", name, other, code)
		}
		seen[code] = name
	}
}
