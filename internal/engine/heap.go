package engine

// HeapSort sorts data in place with a binary max-heap. Introsort falls back
// to it when a segment exhausts its depth budget.
func HeapSort[T Element](data []T) {
	n := len(data)
	for root := n/2 - 1; root >= 0; root-- {
		siftDown(data, root, n)
	}
	for end := n - 1; end > 0; end-- {
		data[0], data[end] = data[end], data[0]
		siftDown(data, 0, end)
	}
}

func siftDown[T Element](data []T, root, n int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && data[child] < data[child+1] {
			child++
		}
		if !(data[root] < data[child]) {
			return
		}
		data[root], data[child] = data[child], data[root]
		root = child
	}
}
