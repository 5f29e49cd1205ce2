// Package config parses the command line and environment into an AppConfig.
package config

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/agbru/vsort/internal/calibration"
	apperrors "github.com/agbru/vsort/internal/errors"
	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/memory"
	"github.com/agbru/vsort/internal/parallel"
	"github.com/agbru/vsort/internal/ui"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "VSORT_"

// Element kinds accepted by --kind.
const (
	KindInt32   = "int32"
	KindFloat32 = "float32"
	KindBytes   = "bytes"
)

// Patterns accepted by --pattern.
var Patterns = []string{"all", "random", "sorted", "reversed", "nearly-sorted", "few-unique"}

// Shells accepted by --completion.
var Shells = []string{"bash", "zsh", "fish"}

// GC modes accepted by --gc.
var gcModes = []string{"auto", "aggressive", "disabled"}

// DefaultTimeout bounds a benchmark or calibration run.
const DefaultTimeout = 5 * time.Minute

// AppConfig is the fully resolved command line.
type AppConfig struct {
	Kind       string
	InputFile  string
	OutputFile string

	Stable     bool
	NoParallel bool
	NoRadix    bool
	Efficiency bool
	ForceSIMD  bool

	Executor string
	Workers  int

	// Threshold overrides; 0 keeps the calibrated value.
	InsertionThreshold int
	SampleSize         int
	ParallelThreshold  int
	RadixThreshold     int
	CacheOptimal       int

	MemoryLimit string
	GCMode      string

	Bench   int
	Pattern string
	Rounds  int
	Timeout time.Duration

	Calibrate          bool
	CalibrationProfile string

	Info    bool
	Metrics bool

	LogLevel   string
	Theme      string
	NoColor    bool
	Quiet      bool
	Version    bool
	Completion string
}

// ParseConfig parses args (without the program name) and the VSORT_
// environment. Flags given on the command line win over the environment.
// pflag.ErrHelp is returned unwrapped when --help was requested.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	var cfg AppConfig
	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(errorOutput)
	fs.SortFlags = false

	fs.StringVar(&cfg.Kind, "kind", KindInt32, "element kind: int32, float32 or bytes")
	fs.StringVarP(&cfg.InputFile, "input", "i", "", "read input from `file` instead of stdin")
	fs.StringVarP(&cfg.OutputFile, "output", "o", "", "write the result to `file` instead of stdout")

	fs.BoolVar(&cfg.Stable, "stable", false, "keep equal elements in input order")
	fs.BoolVar(&cfg.NoParallel, "no-parallel", false, "never use the parallel path")
	fs.BoolVar(&cfg.NoRadix, "no-radix", false, "never use radix sort")
	fs.BoolVar(&cfg.Efficiency, "efficiency", false, "prefer energy efficiency over throughput")
	fs.BoolVar(&cfg.ForceSIMD, "force-simd", false, "use the lane-masked partition regardless of CPU support")

	fs.StringVar(&cfg.Executor, "executor", string(parallel.KindAnts), "fork-join backend: ants, errgroup or sequential")
	fs.IntVar(&cfg.Workers, "workers", 0, "worker count (0 = performance cores)")

	fs.IntVar(&cfg.InsertionThreshold, "insertion-threshold", 0, "insertion sort cutoff (0 = calibrated)")
	fs.IntVar(&cfg.SampleSize, "sample-size", 0, "nearly-sorted probe count (0 = calibrated)")
	fs.IntVar(&cfg.ParallelThreshold, "parallel-threshold", 0, "minimum length for parallel sorting (0 = calibrated)")
	fs.IntVar(&cfg.RadixThreshold, "radix-threshold", 0, "minimum length for radix sort (0 = calibrated)")
	fs.IntVar(&cfg.CacheOptimal, "cache-optimal", 0, "parallel chunk working set in elements (0 = calibrated)")

	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "cap on scratch memory, e.g. 64M or 1GiB")
	fs.StringVar(&cfg.GCMode, "gc", "auto", "garbage collector during benchmarks: auto, aggressive or disabled")

	fs.IntVar(&cfg.Bench, "bench", 0, "benchmark strategies on `n` generated elements")
	fs.StringVar(&cfg.Pattern, "pattern", "all", "benchmark input: "+strings.Join(Patterns, ", "))
	fs.IntVar(&cfg.Rounds, "rounds", 3, "timed repetitions per benchmark strategy")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "limit for a benchmark or calibration run")

	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "measure the parallel threshold and save a profile")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "calibration profile `path` (default ~/"+calibration.DefaultProfileFileName+")")

	fs.BoolVar(&cfg.Info, "info", false, "print the hardware profile and thresholds")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "print Prometheus metrics to stderr on exit")

	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "log level: debug, info, warn, error or none")
	fs.StringVar(&cfg.Theme, "theme", ui.DefaultThemeName, "color theme: "+strings.Join(ui.ThemeNames(), ", "))
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print only the result")
	fs.BoolVarP(&cfg.Version, "version", "V", false, "print the version and exit")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script for `shell`: bash, zsh or fish")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)
	cfg.Kind = strings.ToLower(cfg.Kind)
	if cfg.CalibrationProfile == "" {
		cfg.CalibrationProfile = calibration.GetDefaultProfilePath()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field that has a restricted domain.
func (c AppConfig) Validate() error {
	switch c.Kind {
	case KindInt32, KindFloat32, KindBytes:
	default:
		return apperrors.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q (want int32, float32 or bytes)", c.Kind)}
	}
	if _, err := parallel.ParseKind(c.Executor); err != nil {
		return apperrors.ValidationError{Field: "executor", Message: err.Error()}
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}

	thresholds := []struct {
		name string
		v    int
	}{
		{"insertion-threshold", c.InsertionThreshold},
		{"sample-size", c.SampleSize},
		{"parallel-threshold", c.ParallelThreshold},
		{"radix-threshold", c.RadixThreshold},
		{"cache-optimal", c.CacheOptimal},
	}
	for _, t := range thresholds {
		if t.v < 0 {
			return apperrors.ValidationError{Field: t.name, Message: "must not be negative"}
		}
	}

	if _, err := memory.ParseMemoryLimit(c.MemoryLimit); err != nil {
		return apperrors.ValidationError{Field: "memory-limit", Message: err.Error()}
	}
	if !slices.Contains(gcModes, c.GCMode) {
		return apperrors.ValidationError{Field: "gc", Message: fmt.Sprintf("unknown mode %q", c.GCMode)}
	}
	if c.Bench < 0 {
		return apperrors.ValidationError{Field: "bench", Message: "must not be negative"}
	}
	if !slices.Contains(Patterns, c.Pattern) {
		return apperrors.ValidationError{Field: "pattern", Message: fmt.Sprintf("unknown pattern %q", c.Pattern)}
	}
	if c.Rounds <= 0 {
		return apperrors.ValidationError{Field: "rounds", Message: "must be greater than zero"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be greater than zero"}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.ValidationError{Field: "log-level", Message: err.Error()}
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", c.Theme)}
	}
	if c.Completion != "" && !slices.Contains(Shells, c.Completion) {
		return apperrors.ValidationError{Field: "completion", Message: fmt.Sprintf("unsupported shell %q", c.Completion)}
	}
	if c.Bench > 0 && c.Calibrate {
		return apperrors.NewConfigError("--bench and --calibrate are mutually exclusive")
	}
	return nil
}

// MemoryLimitBytes returns the parsed --memory-limit, 0 when unset.
func (c AppConfig) MemoryLimitBytes() int64 {
	n, _ := memory.ParseMemoryLimit(c.MemoryLimit)
	return n
}

// ThresholdOverrides returns the threshold flags as an overlay for
// calibration.Thresholds.WithOverrides.
func (c AppConfig) ThresholdOverrides() calibration.Thresholds {
	return calibration.Thresholds{
		Insertion:    c.InsertionThreshold,
		SampleSize:   c.SampleSize,
		Parallel:     c.ParallelThreshold,
		Radix:        c.RadixThreshold,
		CacheOptimal: c.CacheOptimal,
	}
}
