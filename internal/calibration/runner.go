package calibration

import (
	"context"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/agbru/vsort/internal/hardware"
)

// ParallelSpeedupThreshold is the minimum parallel/sequential speedup for a
// size to qualify as the parallel threshold.
const ParallelSpeedupThreshold = 1.1

// DefaultRounds is the number of timed repetitions per size; the fastest
// one counts.
const DefaultRounds = 3

// Strategies are the two sorting paths raced against each other. Each must
// sort its argument in place.
type Strategies struct {
	Sequential func([]int32)
	Parallel   func([]int32)
}

// Result is the measurement for one candidate size.
type Result struct {
	Size       int
	Sequential time.Duration
	Parallel   time.Duration
	Speedup    float64
	Err        error
}

// Options configure RunCalibration.
type Options struct {
	// Candidates overrides the generated candidate sizes.
	Candidates []int
	// Rounds is the number of repetitions per size (DefaultRounds if 0).
	Rounds int
	// ProfilePath, when set, receives the refined profile.
	ProfilePath string
	// Seed makes the generated input reproducible.
	Seed uint64
}

// Measure races the strategies on random input of every candidate size and
// returns the measurements together with the chosen parallel threshold: the
// smallest size reaching ParallelSpeedupThreshold, or MaxParallelThreshold
// when parallel sorting never paid off.
func Measure(ctx context.Context, candidates []int, s Strategies, rounds int, seed uint64) ([]Result, int, error) {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	results := make([]Result, 0, len(candidates))
	best := 0

	for _, size := range candidates {
		if err := ctx.Err(); err != nil {
			return results, MaxParallelThreshold, err
		}
		input := make([]int32, size)
		for i := range input {
			input[i] = rng.Int32()
		}
		res := Result{Size: size}
		res.Sequential = fastest(input, s.Sequential, rounds)
		res.Parallel = fastest(input, s.Parallel, rounds)
		if res.Parallel > 0 {
			res.Speedup = float64(res.Sequential) / float64(res.Parallel)
		}
		if best == 0 && res.Speedup >= ParallelSpeedupThreshold {
			best = size
		}
		results = append(results, res)
	}
	if best == 0 {
		best = MaxParallelThreshold
	}
	return results, clamp(best, MinParallelThreshold, MaxParallelThreshold), nil
}

func fastest(input []int32, sortFn func([]int32), rounds int) time.Duration {
	work := make([]int32, len(input))
	var best time.Duration
	for r := 0; r < rounds; r++ {
		copy(work, input)
		start := time.Now()
		sortFn(work)
		elapsed := time.Since(start)
		if r == 0 || elapsed < best {
			best = elapsed
		}
	}
	return best
}

// RunCalibration measures the parallel crossover on this machine, stores the
// refined thresholds in a new profile (saved when opts.ProfilePath is set)
// and prints a summary to out.
func RunCalibration(ctx context.Context, out io.Writer, s Strategies, opts Options) (*CalibrationProfile, error) {
	start := time.Now()
	profile := NewProfile()

	candidates := opts.Candidates
	if len(candidates) == 0 {
		candidates = GenerateParallelCandidates(hardware.Detect())
	}
	if len(candidates) == 0 {
		printSingleCoreNotice(out)
		return profile, saveIfRequested(profile, opts.ProfilePath)
	}

	results, best, err := Measure(ctx, candidates, s, opts.Rounds, opts.Seed)
	if err != nil {
		return nil, err
	}
	profile.Thresholds.Parallel = best
	profile.CalibrationN = slices.Max(candidates)
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	printCalibrationResults(out, results, best)
	printCalibrationOutput(out, profile.Thresholds)
	return profile, saveIfRequested(profile, opts.ProfilePath)
}

func saveIfRequested(p *CalibrationProfile, path string) error {
	if path == "" {
		return nil
	}
	return p.SaveProfile(path)
}

// ApplyCachedProfile overlays the thresholds of a valid cached profile at
// path onto base. ok is false when no usable profile exists.
func ApplyCachedProfile(base Thresholds, path string) (t Thresholds, ok bool) {
	if path == "" {
		return base, false
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return base, false
	}
	return base.WithOverrides(p.Thresholds), true
}
