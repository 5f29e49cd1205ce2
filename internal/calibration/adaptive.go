// This file generates the candidate sizes probed when refining the parallel
// threshold by measurement.

package calibration

import "github.com/agbru/vsort/internal/hardware"

// ─────────────────────────────────────────────────────────────────────────────
// Parallel Threshold Candidates
// ─────────────────────────────────────────────────────────────────────────────

// GenerateParallelCandidates returns the array lengths at which sequential
// and parallel sorting are raced during calibration, smallest first.
//
// The rationale:
// - One performance core: nothing to race, the parallel path is never used
// - 2-4 cores: fork-join overhead is amortised late, start at 64Ki elements
// - 5-8 cores: start at the minimum threshold
// - more cores: skip the largest sizes, the crossover always comes earlier
func GenerateParallelCandidates(p hardware.Profile) []int {
	cores := p.PerformanceCores
	if cores <= 0 {
		cores = p.TotalCores
	}
	switch {
	case cores <= 1:
		return nil
	case cores <= 4:
		return []int{1 << 16, 1 << 17, 1 << 18, 1 << 19, 1 << 20, 1 << 21}
	case cores <= 8:
		return []int{1 << 15, 1 << 16, 1 << 17, 1 << 18, 1 << 19, 1 << 20}
	default:
		return []int{1 << 15, 1 << 16, 1 << 17, 1 << 18, 1 << 19}
	}
}

// GenerateQuickParallelCandidates is the reduced set used when calibration
// must finish quickly.
func GenerateQuickParallelCandidates(p hardware.Profile) []int {
	full := GenerateParallelCandidates(p)
	if len(full) <= 3 {
		return full
	}
	return []int{full[0], full[len(full)/2], full[len(full)-1]}
}
