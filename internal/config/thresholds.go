package config

import (
	"github.com/agbru/vsort/internal/calibration"
	"github.com/agbru/vsort/internal/hardware"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--insertion-threshold, --parallel-threshold, ...)
//   2. Environment variables (VSORT_PARALLEL_THRESHOLD, etc.)
//   3. Cached calibration profile (~/.vsort_calibration.json)
//   4. Calibration from the hardware profile

// Threshold sources reported by ResolveThresholds.
const (
	SourceHardware = "hardware"
	SourceProfile  = "profile"
	SourceFlags    = "flags"
)

// ResolveThresholds computes the thresholds the sorter should run with. The
// source names the highest-priority layer that contributed a value.
func ResolveThresholds(cfg AppConfig, p hardware.Profile) (calibration.Thresholds, string) {
	t := calibration.Calibrate(p)
	source := SourceHardware

	if cached, ok := calibration.ApplyCachedProfile(t, cfg.CalibrationProfile); ok {
		t = cached
		source = SourceProfile
	}

	overrides := cfg.ThresholdOverrides()
	if overrides != (calibration.Thresholds{}) {
		t = t.WithOverrides(overrides)
		source = SourceFlags
	}
	return t, source
}
