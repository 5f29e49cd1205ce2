package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"

	"github.com/agbru/vsort"
	apperrors "github.com/agbru/vsort/internal/errors"
	"github.com/agbru/vsort/internal/memory"
	"github.com/agbru/vsort/internal/metrics"
	"github.com/agbru/vsort/internal/sysmon"
)

// Sorter is the part of *vsort.Sorter the benchmark drives.
type Sorter interface {
	SortContext(ctx context.Context, req vsort.Request) vsort.Outcome
}

// Strategy is a named flag combination timed by the benchmark. The stdlib
// strategy has no flags and times slices.Sort instead.
type Strategy struct {
	Name  string
	Flags vsort.Flags
}

// Benchmark strategies in display order.
var (
	StrategyAuto       = Strategy{"auto", vsort.StandardFlags}
	StrategySequential = Strategy{"sequential", vsort.PreferThroughput}
	StrategyParallel   = Strategy{"parallel", vsort.AllowParallel | vsort.PreferThroughput}
	StrategyRadix      = Strategy{"radix", vsort.AllowRadix | vsort.PreferThroughput}
	StrategyStable     = Strategy{"stable", vsort.ForceStable | vsort.PreferThroughput}
	StrategyStdlib     = Strategy{"stdlib", 0}
)

// StrategiesFor returns the strategies that are distinct for an element kind.
func StrategiesFor(kind string) []Strategy {
	switch kind {
	case "bytes":
		return []Strategy{StrategyAuto, StrategyStdlib}
	case "float32":
		return []Strategy{StrategyAuto, StrategySequential, StrategyParallel, StrategyStable, StrategyStdlib}
	}
	return []Strategy{StrategyAuto, StrategySequential, StrategyParallel, StrategyRadix, StrategyStable, StrategyStdlib}
}

// BenchPatterns lists the generated input shapes.
var BenchPatterns = []string{"random", "sorted", "reversed", "nearly-sorted", "few-unique"}

// BenchConfig controls a benchmark run.
type BenchConfig struct {
	Kind     string
	N        int
	Patterns []string
	Rounds   int
	Seed     uint64
	GCMode   string
	Timeout  time.Duration
	Quiet    bool
	Logger   *zerolog.Logger
}

// BenchResult is the best time of one strategy on one pattern.
type BenchResult struct {
	Pattern  string
	Strategy string
	Best     time.Duration
	Err      error
}

// Throughput returns sorted elements per second for n elements.
func (r BenchResult) Throughput(n int) float64 {
	if r.Best <= 0 {
		return 0
	}
	return float64(n) / r.Best.Seconds()
}

// BenchReport is everything DisplayBenchReport prints.
type BenchReport struct {
	Kind     string
	N        int
	Rounds   int
	Results  []BenchResult
	GC       memory.GCStats
	Memory   metrics.MemoryDelta
	Load     sysmon.Stats
	Duration time.Duration
}

// RunBench times every strategy on every pattern and verifies that each
// strategy's output equals the reference sort. A failing strategy is recorded
// on its result and the first failure is returned after all runs finish;
// differing output is an apperrors.MismatchError.
func RunBench(ctx context.Context, s Sorter, cfg BenchConfig, out io.Writer) (BenchReport, error) {
	if cfg.Rounds <= 0 {
		cfg.Rounds = 1
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = BenchPatterns
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	report := BenchReport{Kind: cfg.Kind, N: cfg.N, Rounds: cfg.Rounds}
	strategies := StrategiesFor(cfg.Kind)
	progress := NewBenchProgress(len(cfg.Patterns) * len(strategies))

	spin := Spinner(nil)
	if !cfg.Quiet {
		spin = newSpinner(spinner.WithWriter(out))
		spin.UpdateSuffix(progress.FormatProgress("starting"))
		spin.Start()
		defer spin.Stop()
	}

	gc := memory.NewGCController(cfg.GCMode, cfg.N)
	if cfg.Logger != nil {
		gc.SetLogger(*cfg.Logger)
	}
	collector := metrics.NewMemoryCollector()
	// CPU load is measured since the previous sample.
	sysmon.Sample()
	before := collector.Snapshot()
	start := time.Now()
	gc.Begin()

	var err error
	switch cfg.Kind {
	case "bytes":
		report.Results, err = benchKind(ctx, s, cfg, strategies, progress, spin,
			func(r *rand.Rand) byte { return byte(r.UintN(256)) },
			func(d []byte) vsort.Payload { return vsort.ByteSlice(d) })
	case "float32":
		report.Results, err = benchKind(ctx, s, cfg, strategies, progress, spin,
			func(r *rand.Rand) float32 { return r.Float32()*2e6 - 1e6 },
			func(d []float32) vsort.Payload { return vsort.Float32Slice(d) })
	default:
		report.Results, err = benchKind(ctx, s, cfg, strategies, progress, spin,
			func(r *rand.Rand) int32 { return int32(r.Uint32()) },
			func(d []int32) vsort.Payload { return vsort.Int32Slice(d) })
	}

	gc.End()
	report.Duration = time.Since(start)
	report.GC = gc.Stats()
	report.Memory = collector.Snapshot().Since(before)
	report.Load = sysmon.Sample()

	if cfg.Timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: "benchmark", Limit: cfg.Timeout}
	}
	return report, err
}

type benchElem interface {
	int32 | float32 | byte
}

func benchKind[T benchElem](
	ctx context.Context,
	s Sorter,
	cfg BenchConfig,
	strategies []Strategy,
	progress *BenchProgress,
	spin Spinner,
	gen func(*rand.Rand) T,
	wrap func([]T) vsort.Payload,
) ([]BenchResult, error) {
	var (
		results []BenchResult
		failure error
	)
	work := make([]T, cfg.N)
	for pi, pattern := range cfg.Patterns {
		src := GeneratePattern(pattern, cfg.N, cfg.Seed+uint64(pi), gen)
		reference := slices.Clone(src)
		slices.Sort(reference)

		for _, st := range strategies {
			if spin != nil {
				spin.UpdateSuffix(progress.FormatProgress(pattern + "/" + st.Name))
			}
			res := BenchResult{Pattern: pattern, Strategy: st.Name, Best: -1}
			for range cfg.Rounds {
				if err := ctx.Err(); err != nil {
					return results, err
				}
				copy(work, src)
				t0 := time.Now()
				if st.Flags == 0 {
					slices.Sort(work)
				} else if o := s.SortContext(ctx, vsort.Request{Data: wrap(work), Flags: st.Flags}); o != vsort.Ok {
					res.Err = apperrors.SortError{Strategy: st.Name, Cause: o.Err()}
					break
				}
				if d := time.Since(t0); res.Best < 0 || d < res.Best {
					res.Best = d
				}
			}
			if res.Err == nil {
				if i := firstDifference(work, reference); i >= 0 {
					res.Err = apperrors.MismatchError{Strategy: st.Name, Pattern: pattern, Index: i}
				}
			}
			if res.Err != nil {
				res.Best = 0
				if failure == nil {
					failure = res.Err
				}
			}
			results = append(results, res)
			progress.Advance()
		}
	}
	return results, failure
}

// GeneratePattern builds n elements of the named shape from a seeded PCG
// source, so equal seeds give equal inputs.
func GeneratePattern[T cmp.Ordered](pattern string, n int, seed uint64, gen func(*rand.Rand) T) []T {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := make([]T, n)

	if pattern == "few-unique" {
		var palette [16]T
		for i := range palette {
			palette[i] = gen(r)
		}
		for i := range data {
			data[i] = palette[r.IntN(len(palette))]
		}
		return data
	}

	for i := range data {
		data[i] = gen(r)
	}
	switch pattern {
	case "sorted":
		slices.Sort(data)
	case "reversed":
		slices.Sort(data)
		slices.Reverse(data)
	case "nearly-sorted":
		slices.Sort(data)
		// One swap per hundred elements keeps the input under the
		// heuristic's inversion bound.
		for range n / 100 {
			i, j := r.IntN(n), r.IntN(n)
			data[i], data[j] = data[j], data[i]
		}
	}
	return data
}

func firstDifference[T comparable](got, want []T) int {
	for i := range want {
		if got[i] != want[i] {
			return i
		}
	}
	return -1
}

// Describe is a one-line header for the report.
func (r BenchReport) Describe() string {
	return fmt.Sprintf("%d %s elements, best of %d rounds", r.N, r.Kind, r.Rounds)
}
