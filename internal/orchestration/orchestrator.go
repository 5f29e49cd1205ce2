package orchestration

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/vsort/internal/calibration"
	"github.com/agbru/vsort/internal/engine"
	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/memory"
	"github.com/agbru/vsort/internal/parallel"
	"github.com/agbru/vsort/internal/pool"
)

// DefaultChunkSize is used when the thresholds yield no chunk size.
const DefaultChunkSize = 4096

// ErrNoChunks is returned when the input cannot be divided into chunks.
var ErrNoChunks = errors.New("orchestration: no chunks to sort")

// TracerName identifies the spans emitted by Run.
const TracerName = "github.com/agbru/vsort/internal/orchestration"

// Config carries everything Run needs besides the data.
type Config struct {
	Thresholds calibration.Thresholds
	Executor   parallel.Executor
	QoS        parallel.QoS
	// VectorPartition is forwarded to the per-chunk introsort.
	VectorPartition bool
	// Budget is charged for a transient merge buffer when the pool slot is
	// busy. Nil is unlimited.
	Budget *memory.Budget
	// Tracer defaults to the global otel tracer provider.
	Tracer trace.Tracer
	Logger logging.Logger
}

// Stats describe a completed run.
type Stats struct {
	ChunkSize    int
	Chunks       int
	MergeRounds  int
	MergeTasks   int
	PooledBuffer bool
}

// Run sorts data in parallel. On error data is still a permutation of its
// input (every task either completed or never started), so the caller can
// finish the job sequentially. ctx is used for tracing only; a started sort
// is never abandoned.
func Run[T engine.Element](ctx context.Context, cfg Config, slot *pool.Slot[T], data []T) error {
	_, err := RunWithStats(ctx, cfg, slot, data)
	return err
}

// RunWithStats is Run that also reports how the work was divided.
func RunWithStats[T engine.Element](ctx context.Context, cfg Config, slot *pool.Slot[T], data []T) (st Stats, err error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.Executor == nil {
		cfg.Executor = parallel.Sequential{}
	}

	n := len(data)
	st.ChunkSize = cfg.Thresholds.ChunkSize()
	if st.ChunkSize <= 0 {
		st.ChunkSize = DefaultChunkSize
	}
	st.Chunks = (n + st.ChunkSize - 1) / st.ChunkSize

	_, span := tracer.Start(ctx, "vsort.parallel_sort", trace.WithAttributes(
		attribute.Int("vsort.n", n),
		attribute.Int("vsort.chunk_size", st.ChunkSize),
		attribute.Int("vsort.chunks", st.Chunks),
		attribute.String("vsort.qos", cfg.QoS.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if st.Chunks == 0 {
		return st, ErrNoChunks
	}

	if err := sortChunks(cfg, data, st.ChunkSize); err != nil {
		return st, fmt.Errorf("chunk phase: %w", err)
	}
	span.AddEvent("chunks sorted")

	if st.Chunks == 1 {
		return st, nil
	}

	buf, release, pooled, err := mergeBuffer(cfg.Budget, slot, n)
	if err != nil {
		return st, fmt.Errorf("merge buffer: %w", err)
	}
	defer release()
	st.PooledBuffer = pooled

	for width := st.ChunkSize; width < n; width *= 2 {
		tasks := mergeTasks(data, buf, width)
		st.MergeRounds++
		st.MergeTasks += len(tasks)
		span.AddEvent("merge round", trace.WithAttributes(
			attribute.Int("vsort.width", width),
			attribute.Int("vsort.tasks", len(tasks)),
		))
		if len(tasks) == 0 {
			continue
		}
		if err := cfg.Executor.ForkJoin(cfg.QoS, tasks); err != nil {
			return st, fmt.Errorf("merge round width %d: %w", width, err)
		}
	}

	logger.Debug("parallel sort finished",
		logging.Int("n", n),
		logging.Int("chunks", st.Chunks),
		logging.Int("rounds", st.MergeRounds),
		logging.Bool("pooled_buffer", st.PooledBuffer))
	return st, nil
}

// sortChunks sorts every chunk of data in one fork-join batch.
func sortChunks[T engine.Element](cfg Config, data []T, chunk int) error {
	opts := engine.Options{
		InsertionThreshold: cfg.Thresholds.Insertion,
		VectorPartition:    cfg.VectorPartition,
	}
	tasks := make([]func(), 0, (len(data)+chunk-1)/chunk)
	for lo := 0; lo < len(data); lo += chunk {
		part := data[lo:min(lo+chunk, len(data))]
		if len(part) <= cfg.Thresholds.Insertion {
			tasks = append(tasks, func() { engine.InsertionSort(part) })
		} else {
			tasks = append(tasks, func() { engine.Introsort(part, opts) })
		}
	}
	return cfg.Executor.ForkJoin(cfg.QoS, tasks)
}

// mergeTasks builds one task per adjacent pair of runs of the given width
// that is out of order at its boundary.
func mergeTasks[T engine.Element](data, buf []T, width int) []func() {
	n := len(data)
	var tasks []func()
	for left := 0; left < n; left += 2 * width {
		mid := min(left+width, n)
		right := min(left+2*width, n)
		if mid >= right || data[mid-1] <= data[mid] {
			continue
		}
		tasks = append(tasks, func() { engine.Merge(data, left, mid, right, buf) })
	}
	return tasks
}

// mergeBuffer leases the pooled buffer, or allocates a transient one
// charged to budget when the slot is busy or absent.
func mergeBuffer[T engine.Element](budget *memory.Budget, slot *pool.Slot[T], n int) (buf []T, release func(), pooled bool, err error) {
	if slot != nil {
		if lease, ok := slot.Acquire(n); ok {
			return lease.Buffer(), lease.Release, true, nil
		}
	}
	buf, err = memory.Alloc[T](budget, n)
	if err != nil {
		return nil, nil, false, err
	}
	return buf, func() { memory.Free(budget, buf) }, false, nil
}
