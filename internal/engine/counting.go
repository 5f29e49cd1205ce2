package engine

// CountingSort sorts bytes with a 256-bin histogram in two linear passes.
func CountingSort(data []byte) {
	if len(data) < 2 {
		return
	}
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	pos := 0
	for v, c := range counts {
		for end := pos + c; pos < end; pos++ {
			data[pos] = byte(v)
		}
	}
}
