package hardware

import "github.com/klauspost/cpuid/v2"

// cpuidProbe reads the CPUID-derived topology gathered by klauspost/cpuid at
// package init. Unknown values are reported as zero.
func cpuidProbe() Profile {
	c := cpuid.CPU
	p := Profile{
		TotalCores: c.LogicalCores,
		L1:         positive(c.Cache.L1D),
		L2:         positive(c.Cache.L2),
		L3:         positive(c.Cache.L3),
		CacheLine:  positive(c.CacheLine),
		Model:      c.BrandName,
	}
	if !simdDisabled() {
		switch {
		case c.Supports(cpuid.AVX512F):
			p.SIMD = SIMDAVX512
		case c.Supports(cpuid.AVX2):
			p.SIMD = SIMDAVX2
		case c.Supports(cpuid.ASIMD):
			p.SIMD = SIMDNEON
		}
	}
	return p
}

func positive(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
