package calibration

import (
	"fmt"

	"github.com/agbru/vsort/internal/hardware"
)

// IntSize is the element width the cache-driven formulas are expressed in.
const IntSize = 4

// Bounds applied by Calibrate.
const (
	MinInsertionThreshold = 16
	MaxInsertionThreshold = 64
	MinSampleSize         = 48
	MaxSampleSize         = 256
	MinParallelThreshold  = 1 << 15
	MaxParallelThreshold  = 1 << 22
	MinRadixThreshold     = 1 << 18
)

// Thresholds are the dispatcher's tuning constants. Every field is positive.
type Thresholds struct {
	// Insertion is the segment length below which insertion sort takes over.
	Insertion int `json:"insertion" yaml:"insertion"`
	// SampleSize bounds the nearly-sorted heuristic's probes.
	SampleSize int `json:"sample_size" yaml:"sample_size"`
	// Parallel is the minimum length for the fork-join path.
	Parallel int `json:"parallel" yaml:"parallel"`
	// Radix is the minimum length for the radix path.
	Radix int `json:"radix" yaml:"radix"`
	// CacheOptimal is the per-task working set, in elements, for parallel chunks.
	CacheOptimal int `json:"cache_optimal" yaml:"cache_optimal"`
}

// Calibrate derives thresholds from a hardware profile. It is pure: the same
// profile always yields the same thresholds.
func Calibrate(p hardware.Profile) Thresholds {
	l1, l2 := p.L1, p.L2
	if l1 <= 0 {
		l1 = hardware.DefaultL1
	}
	if l2 <= 0 {
		l2 = hardware.DefaultL2
	}
	total := max(p.TotalCores, 1)
	perf := p.PerformanceCores
	if perf <= 0 || perf > total {
		perf = total
	}

	insertion := clamp(l1/(4*IntSize), MinInsertionThreshold, MaxInsertionThreshold)
	sample := clamp(insertion*6, MinSampleSize, MaxSampleSize)

	// Scale by the share of performance cores, then by their number.
	base := max(l2/IntSize, MinParallelThreshold)
	scaled := int64(base) * int64(perf) / int64(total) * int64(perf)
	parallel := int(min(max(scaled, MinParallelThreshold), MaxParallelThreshold))

	return Thresholds{
		Insertion:    insertion,
		SampleSize:   sample,
		Parallel:     parallel,
		Radix:        max(2*l2/IntSize, MinRadixThreshold),
		CacheOptimal: max(l1/IntSize, insertion*4),
	}
}

// Validate reports the first non-positive field.
func (t Thresholds) Validate() error {
	fields := []struct {
		name string
		v    int
	}{
		{"insertion", t.Insertion},
		{"sample_size", t.SampleSize},
		{"parallel", t.Parallel},
		{"radix", t.Radix},
		{"cache_optimal", t.CacheOptimal},
	}
	for _, f := range fields {
		if f.v <= 0 {
			return fmt.Errorf("threshold %s must be positive, got %d", f.name, f.v)
		}
	}
	return nil
}

// WithOverrides returns t with every positive field of o applied on top.
func (t Thresholds) WithOverrides(o Thresholds) Thresholds {
	pick := func(cur, over int) int {
		if over > 0 {
			return over
		}
		return cur
	}
	return Thresholds{
		Insertion:    pick(t.Insertion, o.Insertion),
		SampleSize:   pick(t.SampleSize, o.SampleSize),
		Parallel:     pick(t.Parallel, o.Parallel),
		Radix:        pick(t.Radix, o.Radix),
		CacheOptimal: pick(t.CacheOptimal, o.CacheOptimal),
	}
}

// ChunkSize returns the parallel chunk length: the cache-optimal working set,
// but never less than eight insertion-sort segments.
func (t Thresholds) ChunkSize() int {
	return max(t.CacheOptimal, t.Insertion*8)
}

// String renders the thresholds on one line.
func (t Thresholds) String() string {
	return fmt.Sprintf("insertion=%d sample=%d parallel=%d radix=%d cache_optimal=%d",
		t.Insertion, t.SampleSize, t.Parallel, t.Radix, t.CacheOptimal)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
