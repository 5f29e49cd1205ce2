package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/vsort"
	"github.com/agbru/vsort/internal/calibration"
	apperrors "github.com/agbru/vsort/internal/errors"
)

// run executes the command in-process with stdin and returns the exit code
// with both output streams.
func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	// Keep tests away from the user's cached calibration profile.
	base := []string{"vsort", "--no-color", "--executor", "errgroup", "--workers", "2",
		"--calibration-profile", filepath.Join(t.TempDir(), "profile.json")}
	application, err := New(append(base, args...), &stderr, WithStdin(strings.NewReader(stdin)))
	if err != nil {
		return apperrors.ExitCode(err), stdout.String(), err.Error()
	}
	code := application.Run(context.Background(), &stdout)
	return code, stdout.String(), stderr.String()
}

func TestRun_SortKinds(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"int32", []string{"-q"}, "9 3 5 1 8 2 7 6 4 0", "0 1 2 3 4 5 6 7 8 9\n"},
		{"int32 extremes", []string{"-q", "--no-radix"}, "2147483647 -2147483648 0", "-2147483648 0 2147483647\n"},
		{"float32", []string{"-q", "--kind", "float32"}, "1.5 -0.5 1e3", "-0.5 1.5 1000\n"},
		{"bytes", []string{"-q", "--kind", "bytes"}, "zbkarfmpce\n", "abcefkmprz\n"},
		{"bytes crlf", []string{"-q", "--kind", "bytes"}, "cba\r\n", "abc\n"},
		{"stable efficiency", []string{"-q", "--stable", "--efficiency"}, "3 1 2", "1 2 3\n"},
		{"empty", []string{"-q"}, "", "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, tt.stdin, tt.args...)
			if code != apperrors.ExitSuccess {
				t.Fatalf("exit code %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRun_SummaryGoesToStderr(t *testing.T) {
	code, stdout, stderr := run(t, "3 2 1")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "1 2 3\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "Sorted 3 int32 elements") {
		t.Errorf("stderr should carry the summary, got %q", stderr)
	}
}

func TestRun_InputAndOutputFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "sub", "out.txt")
	if err := os.WriteFile(in, []byte("5 4 3 2 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, stdout, stderr := run(t, "", "-i", in, "-o", out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty when writing a file, got %q", stdout)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1 2 3 4 5\n" {
		t.Errorf("output file = %q", got)
	}
	if !strings.Contains(stderr, "Result written to "+out) {
		t.Errorf("summary should name the output file, got %q", stderr)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
		msg   string
	}{
		{"bad token", "1 x 2", nil, apperrors.ExitErrorGeneric, `"x"`},
		{"missing input file", "", []string{"-i", "/nonexistent/in.txt"}, apperrors.ExitErrorGeneric, "open input"},
		{"bad flag", "", []string{"--kind", "int8"}, apperrors.ExitErrorConfig, "kind"},
		{"bad memory limit", "", []string{"--memory-limit", "much"}, apperrors.ExitErrorConfig, "memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.stdin, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
			if !strings.Contains(stderr, tt.msg) {
				t.Errorf("stderr %q should mention %q", stderr, tt.msg)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := run(t, "", "--version")
	if code != apperrors.ExitSuccess || !strings.HasPrefix(stdout, "vsort "+vsort.Version()) {
		t.Errorf("code %d, stdout %q", code, stdout)
	}
}

func TestRun_Completion(t *testing.T) {
	code, stdout, _ := run(t, "", "--completion", "bash")
	if code != apperrors.ExitSuccess || !strings.Contains(stdout, "complete -F _vsort_completions vsort") {
		t.Errorf("code %d, stdout %q", code, stdout)
	}
}

func TestRun_Info(t *testing.T) {
	code, stdout, stderr := run(t, "", "--info", "--parallel-threshold", "50000")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"vsort " + vsort.Version(), "Thresholds (flags)", "50000", "Executor: errgroup (2 workers"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("info missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_BenchQuiet(t *testing.T) {
	code, stdout, stderr := run(t, "", "--bench", "3000", "--pattern", "reversed", "--rounds", "1", "--gc", "disabled", "-q",
		"--parallel-threshold", "1024", "--radix-threshold", "2048")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	// Header plus one row per int32 strategy.
	if len(lines) != 7 {
		t.Fatalf("got %d CSV lines:\n%s", len(lines), stdout)
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "reversed,") || !strings.HasSuffix(line, ",true") {
			t.Errorf("unexpected row %q", line)
		}
	}
}

func TestRun_BenchTable(t *testing.T) {
	code, stdout, stderr := run(t, "", "--bench", "2000", "--kind", "bytes", "--pattern", "few-unique", "--rounds", "2", "--gc", "disabled")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"2000 bytes elements, best of 2 rounds", "few-unique", "stdlib", "Memory Stats"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("report missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_Metrics(t *testing.T) {
	code, _, stderr := run(t, "4 3 2 1", "-q", "--metrics", "--log-level", "none")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, `vsort_sorts_total{algorithm="insertion",kind="int32"} 1`) &&
		!strings.Contains(stderr, `vsort_sorts_total{algorithm="introsort",kind="int32"} 1`) {
		t.Errorf("metrics should count the sort, got:\n%s", stderr)
	}
}

func TestRun_Calibrate(t *testing.T) {
	if testing.Short() {
		t.Skip("times real sorts")
	}
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	code, stdout, stderr := run(t, "", "--calibrate", "--calibration-profile", path, "--rounds", "1")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Profile saved to "+path) {
		t.Errorf("stdout should report the saved profile:\n%s", stdout)
	}
	p, err := calibration.LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if !p.IsValid() {
		t.Errorf("saved profile is not valid: %+v", p)
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want vsort.Flags
	}{
		{"defaults", nil, vsort.StandardFlags},
		{"no parallel no radix", []string{"--no-parallel", "--no-radix"}, vsort.PreferThroughput},
		{"stable simd", []string{"--stable", "--force-simd"}, vsort.StandardFlags | vsort.ForceStable | vsort.ForceSIMD},
		{"efficiency", []string{"--efficiency"}, vsort.AllowParallel | vsort.AllowRadix | vsort.PreferEfficiency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(append([]string{"vsort"}, tt.args...), &bytes.Buffer{})
			if err != nil {
				t.Fatal(err)
			}
			if got := a.Flags(); got != tt.want {
				t.Errorf("Flags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsHelpError(t *testing.T) {
	_, err := New([]string{"vsort", "--help"}, &bytes.Buffer{})
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}
}
