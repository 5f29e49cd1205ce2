package hardware

import (
	"fmt"
	"strings"
)

// Conservative defaults used when no probe can supply a value.
const (
	DefaultL1        = 32 * 1024
	DefaultL2        = 2 * 1024 * 1024
	DefaultCacheLine = 64
	DefaultModel     = "Generic CPU"
)

// Profile describes the processor the engine runs on. It is a value type:
// callers receive copies and cannot mutate the detected profile.
type Profile struct {
	TotalCores       int
	PerformanceCores int
	EfficiencyCores  int

	L1        int // L1 data cache, bytes
	L2        int // bytes
	L3        int // bytes, 0 when absent
	CacheLine int // bytes

	SIMD      SIMDLevel
	SIMDWidth int // vector register width in bytes

	Model string
	// Source lists the probes that contributed, e.g. "cpuid+sysfs".
	Source string
}

// Defaults returns the profile used when nothing can be probed.
func Defaults() Profile {
	return Profile{
		TotalCores:       1,
		PerformanceCores: 1,
		L1:               DefaultL1,
		L2:               DefaultL2,
		CacheLine:        DefaultCacheLine,
		SIMD:             SIMDNone,
		Model:            DefaultModel,
		Source:           "defaults",
	}
}

// HasSIMD reports whether any vector extension usable by the partition
// kernel was detected.
func (p Profile) HasSIMD() bool { return p.SIMD != SIMDNone }

// IsHybrid reports whether the processor mixes performance and efficiency
// cores.
func (p Profile) IsHybrid() bool { return p.EfficiencyCores > 0 }

// String renders the profile on one line for diagnostics.
func (p Profile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d cores", p.Model, p.TotalCores)
	if p.IsHybrid() {
		fmt.Fprintf(&b, " (%dP+%dE)", p.PerformanceCores, p.EfficiencyCores)
	}
	fmt.Fprintf(&b, ", L1 %s, L2 %s", formatBytes(p.L1), formatBytes(p.L2))
	if p.L3 > 0 {
		fmt.Fprintf(&b, ", L3 %s", formatBytes(p.L3))
	}
	fmt.Fprintf(&b, ", line %dB, SIMD %s", p.CacheLine, p.SIMD)
	return b.String()
}

// fill copies into p every field that p leaves at its zero value.
func (p *Profile) fill(src Profile, source string) {
	contributed := false
	set := func(dst *int, v int) {
		if *dst <= 0 && v > 0 {
			*dst = v
			contributed = true
		}
	}
	set(&p.TotalCores, src.TotalCores)
	set(&p.PerformanceCores, src.PerformanceCores)
	set(&p.EfficiencyCores, src.EfficiencyCores)
	set(&p.L1, src.L1)
	set(&p.L2, src.L2)
	set(&p.L3, src.L3)
	set(&p.CacheLine, src.CacheLine)
	if p.SIMD == SIMDNone && src.SIMD != SIMDNone {
		p.SIMD = src.SIMD
		contributed = true
	}
	if p.Model == "" && src.Model != "" {
		p.Model = src.Model
		contributed = true
	}
	if !contributed {
		return
	}
	if p.Source == "" {
		p.Source = source
	} else {
		p.Source += "+" + source
	}
}

// normalize completes a probed profile: defaults for unknown fields and a
// consistent performance/efficiency split.
func (p *Profile) normalize() {
	d := Defaults()
	d.PerformanceCores = 0 // derived below from the total
	p.fill(d, "defaults")
	if p.PerformanceCores+p.EfficiencyCores > p.TotalCores {
		// Affinity-restricted process: the visible CPUs cannot be classified.
		p.PerformanceCores, p.EfficiencyCores = p.TotalCores, 0
	}
	if p.PerformanceCores <= 0 {
		p.PerformanceCores = p.TotalCores - p.EfficiencyCores
		if p.PerformanceCores <= 0 {
			p.PerformanceCores = p.TotalCores
			p.EfficiencyCores = 0
		}
	}
	if p.EfficiencyCores < 0 {
		p.EfficiencyCores = 0
	}
	p.SIMDWidth = p.SIMD.Width()
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMiB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKiB", n>>10)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
