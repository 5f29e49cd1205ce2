package engine

import (
	"encoding/binary"
	"slices"
	"testing"
)

// decodeInt32s reinterprets raw fuzz bytes as little-endian int32s.
func decodeInt32s(raw []byte) []int32 {
	out := make([]int32, len(raw)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return out
}

// FuzzKernelsAgree verifies that introsort (both partitions), radix sort and
// mergesort agree with the standard library on arbitrary input.
func FuzzKernelsAgree(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{1, 0, 0, 0})
	f.Add([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0x80, 0, 0, 0, 0})
	f.Add(slices.Repeat([]byte{3, 1, 2, 0}, 64))

	f.Fuzz(func(t *testing.T, raw []byte) {
		if len(raw) > 1<<16 {
			return
		}
		orig := decodeInt32s(raw)
		want := sortedCopy(orig)

		check := func(name string, sortFn func([]int32)) {
			got := slices.Clone(orig)
			sortFn(got)
			if !slices.Equal(got, want) {
				t.Errorf("%s disagrees with slices.Sort for %v", name, orig)
			}
		}
		check("introsort", func(s []int32) { Introsort(s, Options{InsertionThreshold: 4}) })
		check("introsort/block", func(s []int32) { Introsort(s, Options{InsertionThreshold: 4, VectorPartition: true}) })
		check("mergesort", func(s []int32) { MergeSort(s, make([]int32, len(s)), 4) })
		check("radix", func(s []int32) {
			if err := RadixSort(s, nil); err != nil {
				t.Fatalf("radix: %v", err)
			}
		})
	})
}

// FuzzCountingSort compares byte counting sort with slices.Sort.
func FuzzCountingSort(f *testing.F) {
	f.Add([]byte("zbkarfmpce"))
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		want := slices.Clone(data)
		slices.Sort(want)
		CountingSort(data)
		if !slices.Equal(data, want) {
			t.Errorf("got %q, want %q", data, want)
		}
	})
}
