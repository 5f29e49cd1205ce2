// Package vsort is an adaptive sorting engine that picks an algorithm per
// call from the length of the input, how disordered it looks, and what the
// host processor offers.
//
// The package-level functions (Ints, Float32s, Bytes, SortFunc, Sort) share
// a lazily initialised default Sorter. Programs that want to control the
// worker pool, logging, metrics or a memory cap build their own with New:
//
//	s, err := vsort.New(vsort.WithMemoryLimit(64 << 20))
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	s.Sort(vsort.Request{Data: vsort.Int32Slice(values), Flags: vsort.AllowParallel})
//
// Strategy selection, in order, for 32-bit integers:
//
//   - ForceStable: top-down mergesort with a pooled scratch buffer.
//   - nearly sorted input: insertion sort.
//   - AllowRadix and a large input: 8-bit LSD radix sort.
//   - AllowParallel and a larger input: chunked fork-join sort and merge.
//   - otherwise introsort.
//
// Floats follow the same order without radix; bytes always use counting
// sort. Every fallback (radix range, exhausted memory, a failing worker pool)
// ends in introsort, so a well-formed request always returns Ok.
//
// NaN values have no defined position in a float32 result.
package vsort
