package engine

// MergeSort sorts data stably using buf as scratch. buf must be at least as
// long as data. Runs of at most insertionThreshold elements are sorted by
// insertion sort.
func MergeSort[T Element](data, buf []T, insertionThreshold int) {
	if len(buf) < len(data) {
		panic("engine: merge buffer shorter than data")
	}
	mergeSort(data, buf, 0, len(data), max(insertionThreshold, 1))
}

func mergeSort[T Element](data, buf []T, left, right, threshold int) {
	if right-left <= threshold {
		InsertionSort(data[left:right])
		return
	}
	mid := left + (right-left)/2
	mergeSort(data, buf, left, mid, threshold)
	mergeSort(data, buf, mid, right, threshold)
	Merge(data, left, mid, right, buf)
}

// Merge stably merges the sorted runs data[left:mid] and data[mid:right].
// Only buf[left:mid] is written, so callers merging disjoint ranges
// concurrently may share one buffer of len(data). Adjacent runs that are
// already in order are left alone.
func Merge[T Element](data []T, left, mid, right int, buf []T) {
	if left >= mid || mid >= right || data[mid-1] <= data[mid] {
		return
	}
	copy(buf[left:mid], data[left:mid])

	i, j, k := left, mid, left
	for i < mid && j < right {
		if buf[i] <= data[j] {
			data[k] = buf[i]
			i++
		} else {
			data[k] = data[j]
			j++
		}
		k++
	}
	copy(data[k:], buf[i:mid])
}
