package cli

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/agbru/vsort"
	"github.com/agbru/vsort/internal/calibration"
	apperrors "github.com/agbru/vsort/internal/errors"
	"github.com/agbru/vsort/internal/hardware"
	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/parallel"
)

// Small thresholds so a few thousand elements reach the radix and parallel
// paths.
var testThresholds = calibration.Thresholds{
	Insertion:    16,
	SampleSize:   64,
	Parallel:     1024,
	Radix:        2048,
	CacheOptimal: 256,
}

func newTestSorter(t *testing.T) *vsort.Sorter {
	t.Helper()
	s, err := vsort.New(
		vsort.WithProfile(hardware.Profile{TotalCores: 4, PerformanceCores: 4, L1: 32 << 10, L2: 1 << 20, CacheLine: 64}),
		vsort.WithThresholds(testThresholds),
		vsort.WithExecutorKind(parallel.KindErrgroup, 4),
		vsort.WithLogger(logging.NewNopLogger()),
	)
	if err != nil {
		t.Fatalf("vsort.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStrategiesFor(t *testing.T) {
	t.Parallel()
	names := func(ss []Strategy) []string {
		var out []string
		for _, s := range ss {
			out = append(out, s.Name)
		}
		return out
	}
	if got := names(StrategiesFor("int32")); !slices.Equal(got, []string{"auto", "sequential", "parallel", "radix", "stable", "stdlib"}) {
		t.Errorf("int32 strategies = %v", got)
	}
	if got := names(StrategiesFor("float32")); slices.Contains(got, "radix") {
		t.Errorf("float32 strategies should not include radix: %v", got)
	}
	if got := names(StrategiesFor("bytes")); !slices.Equal(got, []string{"auto", "stdlib"}) {
		t.Errorf("bytes strategies = %v", got)
	}
}

func TestGeneratePattern(t *testing.T) {
	t.Parallel()
	gen := func(r *rand.Rand) int32 { return int32(r.Uint32()) }
	const n = 5000

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		a := GeneratePattern("random", n, 7, gen)
		b := GeneratePattern("random", n, 7, gen)
		if !slices.Equal(a, b) {
			t.Error("equal seeds should give equal inputs")
		}
		if slices.Equal(a, GeneratePattern("random", n, 8, gen)) {
			t.Error("different seeds should give different inputs")
		}
	})

	t.Run("sorted", func(t *testing.T) {
		t.Parallel()
		if !slices.IsSorted(GeneratePattern("sorted", n, 1, gen)) {
			t.Error("sorted pattern is not sorted")
		}
	})

	t.Run("reversed", func(t *testing.T) {
		t.Parallel()
		data := GeneratePattern("reversed", n, 1, gen)
		slices.Reverse(data)
		if !slices.IsSorted(data) {
			t.Error("reversed pattern is not descending")
		}
	})

	t.Run("nearly sorted", func(t *testing.T) {
		t.Parallel()
		data := GeneratePattern("nearly-sorted", n, 1, gen)
		descents := 0
		for i := 1; i < len(data); i++ {
			if data[i-1] > data[i] {
				descents++
			}
		}
		if descents == 0 || descents > n/100*4 {
			t.Errorf("nearly-sorted pattern has %d descents", descents)
		}
	})

	t.Run("few unique", func(t *testing.T) {
		t.Parallel()
		data := GeneratePattern("few-unique", n, 1, gen)
		slices.Sort(data)
		if got := len(slices.Compact(data)); got > 16 {
			t.Errorf("few-unique pattern has %d distinct values", got)
		}
	})
}

func TestRunBench(t *testing.T) {
	t.Parallel()
	s := newTestSorter(t)

	for _, kind := range []string{"int32", "float32", "bytes"} {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			report, err := RunBench(context.Background(), s, BenchConfig{
				Kind:   kind,
				N:      4096,
				Rounds: 2,
				Seed:   3,
				GCMode: "disabled",
				Quiet:  true,
			}, &strings.Builder{})
			if err != nil {
				t.Fatalf("RunBench: %v", err)
			}
			want := len(BenchPatterns) * len(StrategiesFor(kind))
			if len(report.Results) != want {
				t.Fatalf("got %d results, want %d", len(report.Results), want)
			}
			for _, res := range report.Results {
				if res.Err != nil {
					t.Errorf("%s/%s: %v", res.Pattern, res.Strategy, res.Err)
				}
				if res.Best < 0 {
					t.Errorf("%s/%s: negative best time %v", res.Pattern, res.Strategy, res.Best)
				}
			}
			if report.Kind != kind || report.N != 4096 || report.Rounds != 2 {
				t.Errorf("report header = %+v", report)
			}
		})
	}
}

// reversingSorter sorts descending, so every non-trivial result mismatches.
type reversingSorter struct{}

func (reversingSorter) SortContext(_ context.Context, req vsort.Request) vsort.Outcome {
	if d, ok := req.Data.(vsort.Int32Slice); ok {
		slices.Sort(d)
		slices.Reverse(d)
	}
	return vsort.Ok
}

func TestRunBench_Mismatch(t *testing.T) {
	t.Parallel()
	report, err := RunBench(context.Background(), reversingSorter{}, BenchConfig{
		Kind:     "int32",
		N:        100,
		Patterns: []string{"random"},
		Rounds:   1,
		GCMode:   "disabled",
		Quiet:    true,
	}, &strings.Builder{})

	var mismatch apperrors.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mismatch.Strategy != "auto" || mismatch.Pattern != "random" || mismatch.Index != 0 {
		t.Errorf("mismatch = %+v", mismatch)
	}
	if apperrors.ExitCode(err) != apperrors.ExitErrorMismatch {
		t.Errorf("exit code = %d", apperrors.ExitCode(err))
	}
	for _, res := range report.Results {
		if (res.Strategy == "stdlib") != (res.Err == nil) {
			t.Errorf("%s: err = %v", res.Strategy, res.Err)
		}
	}
}

// rejectingSorter reports every request as unsupported.
type rejectingSorter struct{}

func (rejectingSorter) SortContext(context.Context, vsort.Request) vsort.Outcome {
	return vsort.UnsupportedType
}

func TestRunBench_SortError(t *testing.T) {
	t.Parallel()
	_, err := RunBench(context.Background(), rejectingSorter{}, BenchConfig{
		Kind:     "int32",
		N:        10,
		Patterns: []string{"sorted"},
		Rounds:   3,
		GCMode:   "disabled",
		Quiet:    true,
	}, &strings.Builder{})

	var sortErr apperrors.SortError
	if !errors.As(err, &sortErr) {
		t.Fatalf("expected SortError, got %v", err)
	}
	if !errors.Is(err, vsort.ErrUnsupportedType) {
		t.Errorf("error should wrap ErrUnsupportedType: %v", err)
	}
}

// slowSorter outlives the benchmark deadline.
type slowSorter struct{}

func (slowSorter) SortContext(context.Context, vsort.Request) vsort.Outcome {
	time.Sleep(20 * time.Millisecond)
	return vsort.Ok
}

func TestRunBench_Timeout(t *testing.T) {
	t.Parallel()
	_, err := RunBench(context.Background(), slowSorter{}, BenchConfig{
		Kind:    "int32",
		N:       10,
		Rounds:  50,
		GCMode:  "disabled",
		Timeout: 50 * time.Millisecond,
		Quiet:   true,
	}, &strings.Builder{})

	var timeout apperrors.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if apperrors.ExitCode(err) != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d", apperrors.ExitCode(err))
	}
}

func TestRunBench_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunBench(ctx, slowSorter{}, BenchConfig{Kind: "int32", N: 10, GCMode: "disabled", Quiet: true}, &strings.Builder{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if apperrors.ExitCode(err) != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d", apperrors.ExitCode(err))
	}
}

func TestBenchResult_Throughput(t *testing.T) {
	t.Parallel()
	if got := (BenchResult{Best: time.Second}).Throughput(1e6); got != 1e6 {
		t.Errorf("Throughput = %v, want 1e6", got)
	}
	if got := (BenchResult{}).Throughput(10); got != 0 {
		t.Errorf("zero duration throughput = %v", got)
	}
}
