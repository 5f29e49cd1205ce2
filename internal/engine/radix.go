package engine

import (
	"errors"
	"math"
	"math/bits"

	"github.com/agbru/vsort/internal/memory"
)

// ErrRadixRange is returned when max-min does not fit the 32-bit key.
var ErrRadixRange = errors.New("engine: value range exceeds radix key width")

const (
	radixBits = 8
	radixBins = 1 << radixBits
	radixMask = radixBins - 1
)

// RadixSort sorts data by LSD radix over 8-bit digits of the key value-min.
// Only as many passes as the key width of the range are made. Scratch (two
// arrays of n uint32 keys) is charged to budget; on ErrRadixRange or an
// apperrors.MemoryError data is left untouched and the caller should fall back
// to a comparison sort.
func RadixSort[T Integer](data []T, budget *memory.Budget) error {
	n := len(data)
	if n <= 1 {
		return nil
	}

	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	// Unsigned subtraction is exact for hi >= lo even across the full int64
	// range.
	span := uint64(int64(hi)) - uint64(int64(lo))
	if span > math.MaxUint32 {
		return ErrRadixRange
	}

	keys, err := memory.Alloc[uint32](budget, n)
	if err != nil {
		return err
	}
	defer memory.Free(budget, keys)
	tmp, err := memory.Alloc[uint32](budget, n)
	if err != nil {
		return err
	}
	defer memory.Free(budget, tmp)

	base := int64(lo)
	for i, v := range data {
		keys[i] = uint32(int64(v) - base)
	}

	passes := max((bits.Len32(uint32(span))+radixBits-1)/radixBits, 1)
	var hist [radixBins]int
	for pass := 0; pass < passes; pass++ {
		shift := uint(pass * radixBits)
		clear(hist[:])
		for _, k := range keys {
			hist[(k>>shift)&radixMask]++
		}
		total := 0
		for b, c := range hist {
			total += c
			hist[b] = total
		}
		for i := n - 1; i >= 0; i-- {
			k := keys[i]
			b := (k >> shift) & radixMask
			hist[b]--
			tmp[hist[b]] = k
		}
		keys, tmp = tmp, keys
	}

	for i, k := range keys {
		data[i] = T(base + int64(k))
	}
	return nil
}
