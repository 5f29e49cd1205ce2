package engine

import "math/bits"

// lanes is the block width of the vector partition: four 32-bit elements,
// one 128-bit register.
const lanes = 4

// blockPartitionMin is the smallest segment the block partition is used on.
const blockPartitionMin = 32

// medianOfThree orders data[0], data[mid], data[last] and moves the median
// into the last slot, where the partition expects its pivot.
func medianOfThree[T Element](data []T) {
	last, mid := len(data)-1, len(data)/2
	if data[0] > data[mid] {
		data[0], data[mid] = data[mid], data[0]
	}
	if data[mid] > data[last] {
		data[mid], data[last] = data[last], data[mid]
	}
	if data[0] > data[mid] {
		data[0], data[mid] = data[mid], data[0]
	}
	data[mid], data[last] = data[last], data[mid]
}

// partition is a Lomuto partition around the median of three. Elements <=
// pivot end up left of the returned index, the pivot at it. len(data) >= 2.
func partition[T Element](data []T) int {
	medianOfThree(data)
	last := len(data) - 1
	pivot := data[last]
	i := 0
	for j := 0; j < last; j++ {
		if data[j] <= pivot {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	data[i], data[last] = data[last], data[i]
	return i
}

// blockPartition produces exactly the permutation partition does, but
// evaluates the pivot comparison for a block of four elements at once into
// a lane mask and then moves only the selected lanes. A full block that is
// already in place is skipped without swaps.
func blockPartition[T Element](data []T) int {
	medianOfThree(data)
	last := len(data) - 1
	pivot := data[last]
	i, j := 0, 0
	for ; j+lanes <= last; j += lanes {
		mask := laneMask(data[j:j+lanes], pivot)
		if mask == 1<<lanes-1 && i == j {
			i += lanes
			continue
		}
		for mask != 0 {
			k := bits.TrailingZeros8(mask)
			data[i], data[j+k] = data[j+k], data[i]
			i++
			mask &= mask - 1
		}
	}
	for ; j < last; j++ {
		if data[j] <= pivot {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	data[i], data[last] = data[last], data[i]
	return i
}

// laneMask sets bit k when block[k] <= pivot.
func laneMask[T Element](block []T, pivot T) uint8 {
	_ = block[lanes-1]
	var m uint8
	if block[0] <= pivot {
		m |= 1
	}
	if block[1] <= pivot {
		m |= 2
	}
	if block[2] <= pivot {
		m |= 4
	}
	if block[3] <= pivot {
		m |= 8
	}
	return m
}
