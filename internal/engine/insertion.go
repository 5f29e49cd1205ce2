package engine

// InsertionSort sorts data in place. It is stable and adaptive: already
// sorted input costs a single pass.
func InsertionSort[T Element](data []T) {
	for i := 1; i < len(data); i++ {
		v := data[i]
		j := i
		for j > 0 && data[j-1] > v {
			data[j] = data[j-1]
			j--
		}
		data[j] = v
	}
}
