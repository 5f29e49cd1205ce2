// Package engine contains the sequential sorting kernels the dispatcher
// chooses between: insertion sort, heapsort, introsort with an optional
// block partition, LSD radix sort, stable top-down mergesort and byte
// counting sort, plus the sampling heuristic that detects nearly sorted
// input.
//
// The kernels are generic over the element kinds the dispatcher handles and
// sort in place. Every kernel except the radix sort works without allocating;
// scratch space is supplied by the caller or charged to a memory.Budget.
package engine
