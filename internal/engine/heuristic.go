package engine

// Nearly-sorted detection constants.
const (
	nearlySortedMinLen     = 32
	nearlySortedMinSamples = 8
)

// IsNearlySorted samples up to min(sampleHint, n/2) evenly strided pairs and
// reports whether fewer than one in ten is inverted. Inputs shorter than 32
// elements, or yielding fewer than 8 samples, are never classified as nearly
// sorted.
func IsNearlySorted[T Element](data []T, sampleHint int) bool {
	n := len(data)
	if n < nearlySortedMinLen {
		return false
	}
	samples := min(sampleHint, n/2)
	if samples < nearlySortedMinSamples {
		return false
	}

	stride := max(1, n/samples)
	inversions, observed := 0, 0
	for i := 0; i+stride < n && observed < samples; i += stride {
		if data[i] > data[i+stride] {
			inversions++
		}
		observed++
	}
	return observed > 0 && inversions*10 < observed
}
