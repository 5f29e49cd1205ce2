package vsort

import (
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/vsort/internal/calibration"
	"github.com/agbru/vsort/internal/hardware"
	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/memory"
	"github.com/agbru/vsort/internal/metrics"
	"github.com/agbru/vsort/internal/parallel"
	"github.com/agbru/vsort/internal/pool"
)

// LogLevelEnv selects the level of the default stderr logger.
const LogLevelEnv = "VSORT_LOG_LEVEL"

// TracerName identifies the spans emitted by a Sorter.
const TracerName = "github.com/agbru/vsort"

// Sorter owns the runtime a sort needs: the hardware profile and the
// thresholds derived from it, a worker pool, the merge buffer pool and the
// diagnostic sinks. A Sorter is safe for concurrent use; concurrent sorts
// contend only for the merge buffers, and a sort that loses that race
// allocates its own.
type Sorter struct {
	profile      hardware.Profile
	thresholds   calibration.Thresholds
	executor     parallel.Executor
	ownsExecutor bool
	buffers      *pool.MergeBuffers
	budget       *memory.Budget
	logger       logging.Logger
	recorder     metrics.Recorder
	tracer       trace.Tracer
}

type settings struct {
	profile      *hardware.Profile
	thresholds   *calibration.Thresholds
	executor     parallel.Executor
	executorKind parallel.Kind
	workers      int
	logger       logging.Logger
	recorder     metrics.Recorder
	tracer       trace.Tracer
	memoryLimit  int64
}

// Option configures New.
type Option func(*settings)

// WithProfile replaces hardware detection.
func WithProfile(p hardware.Profile) Option {
	return func(s *settings) { s.profile = &p }
}

// WithThresholds replaces calibration. The thresholds must pass Validate.
func WithThresholds(t calibration.Thresholds) Option {
	return func(s *settings) { s.thresholds = &t }
}

// WithExecutor supplies the fork-join backend. The caller keeps ownership:
// Close does not release it.
func WithExecutor(e parallel.Executor) Option {
	return func(s *settings) { s.executor = e }
}

// WithExecutorKind selects the backend New builds when no executor is
// supplied, and optionally its worker count (0 uses the performance cores).
func WithExecutorKind(k parallel.Kind, workers int) Option {
	return func(s *settings) {
		s.executorKind = k
		s.workers = workers
	}
}

// WithLogger sets the diagnostic sink. Fallbacks log at warn level.
func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRecorder sets the metrics sink.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *settings) { s.recorder = r }
}

// WithTracer sets the tracer; the default comes from the global otel
// provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// WithMemoryLimit caps the scratch memory (merge buffers and radix keys)
// the sorter holds at once. Requests that would exceed it fall back to
// in-place algorithms. 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(s *settings) { s.memoryLimit = bytes }
}

// New builds a Sorter. Without options it detects the hardware, calibrates
// thresholds, and starts a worker pool sized to the performance cores.
func New(opts ...Option) (*Sorter, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Sorter{
		logger:   cfg.logger,
		recorder: cfg.recorder,
		tracer:   cfg.tracer,
		budget:   memory.NewBudget(cfg.memoryLimit),
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	if s.recorder == nil {
		s.recorder = metrics.NopRecorder{}
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(TracerName)
	}

	if cfg.profile != nil {
		s.profile = *cfg.profile
	} else {
		s.profile = hardware.Detect()
	}
	if cfg.thresholds != nil {
		if err := cfg.thresholds.Validate(); err != nil {
			return nil, err
		}
		s.thresholds = *cfg.thresholds
	} else {
		s.thresholds = calibration.Calibrate(s.profile)
	}

	if cfg.executor != nil {
		s.executor = cfg.executor
	} else {
		exec, err := parallel.New(parallel.Config{
			Kind:    cfg.executorKind,
			Workers: cfg.workers,
			Logger:  s.logger,
		}, s.profile)
		if err != nil {
			return nil, err
		}
		s.executor = exec
		s.ownsExecutor = true
	}

	s.buffers = pool.NewMergeBuffers(s.budget)
	s.logger.Debug("sorter ready",
		logging.String("profile", s.profile.String()),
		logging.String("thresholds", s.thresholds.String()),
		logging.Bool("parallel", s.executor.Parallel()))
	return s, nil
}

// defaultLogger writes warnings and errors to stderr, or the level named by
// VSORT_LOG_LEVEL.
func defaultLogger() logging.Logger {
	level, err := logging.ParseLevel(os.Getenv(LogLevelEnv))
	if err != nil {
		level = zerolog.WarnLevel
	}
	return logging.NewLevelLogger(os.Stderr, "vsort", level)
}

// Profile returns the hardware profile the sorter was built for.
func (s *Sorter) Profile() hardware.Profile { return s.profile }

// Thresholds returns the active tuning constants.
func (s *Sorter) Thresholds() calibration.Thresholds { return s.thresholds }

// Parallel reports whether the fork-join path is available.
func (s *Sorter) Parallel() bool { return s.executor.Parallel() }

// Warm grows the merge buffers to n elements so the first stable or
// parallel sort of that size does not allocate.
func (s *Sorter) Warm(n int) error { return s.buffers.Warm(n) }

// PoolStats returns the merge buffer pool counters.
func (s *Sorter) PoolStats() pool.Stats { return s.buffers.Stats() }

// Budget exposes the scratch memory accounting.
func (s *Sorter) Budget() *memory.Budget { return s.budget }

// Close releases the worker pool New started and frees idle merge buffers.
// The Sorter must not be used afterwards.
func (s *Sorter) Close() error {
	s.buffers.Close()
	if !s.ownsExecutor {
		return nil
	}
	if c, ok := s.executor.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
