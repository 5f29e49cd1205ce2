// This file contains environment variable utilities for configuration override.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the VSORT_ prefix) to the CLI flag
// name it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"WORKERS", []string{"workers"}, intOverride(func(c *AppConfig) *int { return &c.Workers })},
	{"INSERTION_THRESHOLD", []string{"insertion-threshold"}, intOverride(func(c *AppConfig) *int { return &c.InsertionThreshold })},
	{"SAMPLE_SIZE", []string{"sample-size"}, intOverride(func(c *AppConfig) *int { return &c.SampleSize })},
	{"PARALLEL_THRESHOLD", []string{"parallel-threshold"}, intOverride(func(c *AppConfig) *int { return &c.ParallelThreshold })},
	{"RADIX_THRESHOLD", []string{"radix-threshold"}, intOverride(func(c *AppConfig) *int { return &c.RadixThreshold })},
	{"CACHE_OPTIMAL", []string{"cache-optimal"}, intOverride(func(c *AppConfig) *int { return &c.CacheOptimal })},
	{"ROUNDS", []string{"rounds"}, intOverride(func(c *AppConfig) *int { return &c.Rounds })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"KIND", []string{"kind"}, func(c *AppConfig, v string) { c.Kind = v }},
	{"EXECUTOR", []string{"executor"}, func(c *AppConfig, v string) { c.Executor = v }},
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) { c.MemoryLimit = v }},
	{"GC", []string{"gc"}, func(c *AppConfig, v string) { c.GCMode = v }},
	{"PATTERN", []string{"pattern"}, func(c *AppConfig, v string) { c.Pattern = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) { c.Theme = v }},

	// Boolean overrides
	{"STABLE", []string{"stable"}, boolOverride(func(c *AppConfig) *bool { return &c.Stable })},
	{"NO_PARALLEL", []string{"no-parallel"}, boolOverride(func(c *AppConfig) *bool { return &c.NoParallel })},
	{"NO_RADIX", []string{"no-radix"}, boolOverride(func(c *AppConfig) *bool { return &c.NoRadix })},
	{"EFFICIENCY", []string{"efficiency"}, boolOverride(func(c *AppConfig) *bool { return &c.Efficiency })},
	{"FORCE_SIMD", []string{"force-simd"}, boolOverride(func(c *AppConfig) *bool { return &c.ForceSIMD })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *pflag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
