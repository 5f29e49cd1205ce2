package engine

import (
	"slices"
	"testing"
)

func benchmarkInt32(b *testing.B, n int, sortFn func([]int32)) {
	orig := patterns[0].gen(newRand(), n)
	work := make([]int32, n)
	b.SetBytes(int64(n) * 4)
	b.ResetTimer()
	for b.Loop() {
		copy(work, orig)
		sortFn(work)
	}
}

func BenchmarkIntrosort(b *testing.B) {
	benchmarkInt32(b, 1<<16, func(s []int32) { Introsort(s, Options{InsertionThreshold: 32}) })
}

func BenchmarkIntrosortBlock(b *testing.B) {
	benchmarkInt32(b, 1<<16, func(s []int32) { Introsort(s, Options{InsertionThreshold: 32, VectorPartition: true}) })
}

func BenchmarkRadixSort(b *testing.B) {
	benchmarkInt32(b, 1<<16, func(s []int32) { _ = RadixSort(s, nil) })
}

func BenchmarkMergeSort(b *testing.B) {
	buf := make([]int32, 1<<16)
	benchmarkInt32(b, 1<<16, func(s []int32) { MergeSort(s, buf, 32) })
}

func BenchmarkSlicesSort(b *testing.B) {
	benchmarkInt32(b, 1<<16, func(s []int32) { slices.Sort(s) })
}
