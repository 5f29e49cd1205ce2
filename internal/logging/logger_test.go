package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("radix range exceeded")

	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("kind", "int32"), "kind", "int32"},
		{"Int", Int("n", 42), "n", 42},
		{"Uint64", Uint64("bytes", 12345678901234567890), "bytes", uint64(12345678901234567890)},
		{"Float64", Float64("ratio", 0.25), "ratio", 0.25},
		{"Bool", Bool("stable", true), "stable", true},
		{"Err", Err(sentinel), "error", sentinel},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

func TestNewLogger_IncludesComponent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "dispatcher")
	logger.Info("sorted", Int("n", 10))

	out := buf.String()
	for _, want := range []string{"dispatcher", "sorted", `"n":10`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info",
			log:      func(l Logger) { l.Info("chunk phase done", Int("chunks", 8)) },
			contains: []string{"info", "chunk phase done", "8"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("stable sort fell back", String("to", "introsort")) },
			contains: []string{"warn", "stable sort fell back", "introsort"},
		},
		{
			name:     "error with cause",
			log:      func(l Logger) { l.Error("merge round failed", errors.New("task panicked"), Int("width", 4096)) },
			contains: []string{"error", "merge round failed", "task panicked", "4096"},
		},
		{
			name:     "error without cause",
			log:      func(l Logger) { l.Error("no cause", nil) },
			contains: []string{"error", "no cause"},
		},
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("strategy chosen", String("algorithm", "radix")) },
			contains: []string{"debug", "strategy chosen", "radix"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("worker %d exited", 3) },
			contains: []string{"worker 3 exited"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("pool", "released") },
			contains: []string{"pool released"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)))
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got: %s", want, out)
				}
			}
		})
	}
}

func TestZerologAdapter_applyFields(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "str", Value: "hello"}, "hello"},
		{"int", Field{Key: "num", Value: 42}, "42"},
		{"int64", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool", Field{Key: "flag", Value: true}, "true"},
		{"struct", Field{Key: "data", Value: struct{ X int }{X: 7}}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("fields", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("field %s not rendered, output: %s", tt.name, buf.String())
			}
		})
	}
}

func TestNewLevelLogger_FiltersBelowLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLevelLogger(&buf, "vsort", zerolog.WarnLevel)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("entries below warn should be dropped, got: %s", out)
	}
	if !strings.Contains(out, "visible warn") {
		t.Errorf("warn entry missing, got: %s", out)
	}
}

func TestZerologAdapter_Zerolog(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	zl := NewLevelLogger(&buf, "vsort", zerolog.InfoLevel).Zerolog()
	zl.Debug().Msg("hidden")
	zl.Info().Msg("shared sink")
	if !strings.Contains(buf.String(), "shared sink") || strings.Contains(buf.String(), "hidden") {
		t.Errorf("underlying logger should share writer and level, got: %s", buf.String())
	}
}

func TestNewNopLogger(t *testing.T) {
	t.Parallel()
	logger := NewNopLogger()
	// Must not panic on any method, including with nil errors.
	logger.Debug("x", Int("n", 1))
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x", nil)
	logger.Printf("%d", 1)
	logger.Println("x")
}

func TestNewDefaultLogger(t *testing.T) {
	t.Parallel()
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"none", zerolog.Disabled, false},
		{"", zerolog.WarnLevel, true},
		{"verbose", zerolog.WarnLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("sorted", String("kind", "bytes")) }, []string{"[INFO]", "sorted", "kind=bytes"}},
		{"warn", func(l Logger) { l.Warn("fallback") }, []string{"[WARN]", "fallback"}},
		{"error", func(l Logger) { l.Error("failed", errors.New("boom"), Int("n", 5)) }, []string{"[ERROR]", "failed", "boom", "n=5"}},
		{"debug", func(l Logger) { l.Debug("trace", Int("line", 42)) }, []string{"[DEBUG]", "trace", "line=42"}},
		{"printf", func(l Logger) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"println", func(l Logger) { l.Println("a", "b", "c") }, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got: %s", want, out)
				}
			}
		})
	}
}

func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = NewNopLogger()
}
