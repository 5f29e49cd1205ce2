package engine

import "math/bits"

// Options tune Introsort.
type Options struct {
	// InsertionThreshold is the segment length at or below which insertion
	// sort finishes the work. Values < 1 select DefaultInsertionThreshold.
	InsertionThreshold int
	// VectorPartition selects the block partition for segments of at least
	// 32 elements.
	VectorPartition bool
}

// span is a pending half-open range [lo, hi) with its remaining depth.
type span struct {
	lo, hi, depth int
}

// maxSpans bounds the work stack. The larger side is always deferred and
// the smaller one continued, so at most log2(n) spans are pending at once.
const maxSpans = 64

// Introsort sorts data in place: quicksort with a median-of-three pivot,
// heapsort once a segment exceeds 2*floor(log2 n) partition levels, and
// insertion sort for short segments. It is not stable.
func Introsort[T Element](data []T, opts Options) {
	n := len(data)
	if n < 2 {
		return
	}
	threshold := opts.InsertionThreshold
	if threshold < 1 {
		threshold = DefaultInsertionThreshold
	}

	var stack [maxSpans]span
	stack[0] = span{0, n, DepthLimit(n)}
	top := 1

	for top > 0 {
		top--
		lo, hi, depth := stack[top].lo, stack[top].hi, stack[top].depth

		for hi-lo > threshold {
			if depth == 0 {
				HeapSort(data[lo:hi])
				break
			}
			depth--

			seg := data[lo:hi]
			var p int
			if opts.VectorPartition && len(seg) >= blockPartitionMin {
				p = lo + blockPartition(seg)
			} else {
				p = lo + partition(seg)
			}

			if p-lo < hi-p-1 {
				stack[top] = span{p + 1, hi, depth}
				hi = p
			} else {
				stack[top] = span{lo, p, depth}
				lo = p + 1
			}
			top++
		}
		if hi-lo <= threshold {
			InsertionSort(data[lo:hi])
		}
	}
}

// DepthLimit is the partition depth budget for n elements: 2*floor(log2 n),
// at least 1.
func DepthLimit(n int) int {
	if n < 2 {
		return 1
	}
	return max(2*(bits.Len(uint(n))-1), 1)
}
