package vsort

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/agbru/vsort/internal/parallel"
)

const version = "1.0.0"

var (
	defaultFlags  atomic.Uint32
	initOnce      sync.Once
	defaultSorter atomic.Pointer[Sorter]
)

func init() {
	defaultFlags.Store(uint32(StandardFlags))
}

// Version returns the library version string.
func Version() string { return version }

// SetDefaultFlags changes the flags used by requests that carry none.
func SetDefaultFlags(f Flags) { defaultFlags.Store(uint32(f)) }

// DefaultFlags returns the flags used by requests that carry none.
func DefaultFlags() Flags { return Flags(defaultFlags.Load()) }

// Initialize detects the hardware and calibrates the default Sorter. It is
// called implicitly by the first package-level sort; calling it earlier
// moves that cost out of the first sort. Safe to call more than once.
func Initialize() {
	initOnce.Do(func() {
		s, err := New()
		if err != nil {
			// A worker pool that cannot start leaves a sequential sorter.
			s, _ = New(WithExecutor(parallel.Sequential{}))
			s.logger.Warn("worker pool unavailable, sorting sequentially")
		}
		defaultSorter.Store(s)
	})
}

// Default returns the shared Sorter behind the package-level functions.
func Default() *Sorter {
	Initialize()
	return defaultSorter.Load()
}

// ProcessorCount returns the detected core count once initialised, and the
// runtime's CPU count before that.
func ProcessorCount() int {
	if s := defaultSorter.Load(); s != nil {
		return s.profile.TotalCores
	}
	return runtime.NumCPU()
}

// Sort sorts req.Data with the default Sorter.
func Sort(req Request) Outcome {
	return Default().Sort(req)
}

// SortContext sorts req.Data with the default Sorter.
func SortContext(ctx context.Context, req Request) Outcome {
	return Default().SortContext(ctx, req)
}

// Ints sorts data in ascending order using the default flags.
func Ints(data []int32) {
	Default().Sort(Request{Data: Int32Slice(data), Flags: DefaultFlags()})
}

// Float32s sorts data in ascending order using the default flags without
// radix sort.
func Float32s(data []float32) {
	Default().Sort(Request{Data: Float32Slice(data), Flags: DefaultFlags() &^ AllowRadix})
}

// Bytes sorts data in ascending order.
func Bytes(data []byte) {
	Default().Sort(Request{Data: ByteSlice(data)})
}

// SortFunc sorts data with cmp, a three-way comparison. A nil cmp leaves
// data untouched.
func SortFunc[T any](data []T, cmp func(a, b T) int) {
	Default().Sort(Request{Data: Custom[T]{Data: data, Compare: cmp}})
}
