package engine

import "slices"

// SortFunc sorts data with a caller-supplied three-way comparison. It is
// the path for element kinds the specialised kernels do not cover.
func SortFunc[T any](data []T, cmp func(a, b T) int) {
	slices.SortFunc(data, cmp)
}

// IsSorted reports whether data is in non-decreasing order.
func IsSorted[T Element](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}

// SortStableFunc is SortFunc keeping equal elements in input order.
func SortStableFunc[T any](data []T, cmp func(a, b T) int) {
	slices.SortStableFunc(data, cmp)
}
