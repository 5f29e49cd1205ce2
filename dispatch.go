package vsort

import (
	"context"
	"errors"
	"reflect"
	"time"
	"unsafe"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/vsort/internal/errors"
	"github.com/agbru/vsort/internal/engine"
	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/memory"
	"github.com/agbru/vsort/internal/orchestration"
	"github.com/agbru/vsort/internal/parallel"
	"github.com/agbru/vsort/internal/pool"
)

// Algorithm names reported to metrics, traces and logs.
const (
	AlgoNone       = "none"
	AlgoInsertion  = "insertion"
	AlgoIntrosort  = "introsort"
	AlgoRadix      = "radix"
	AlgoMergesort  = "mergesort"
	AlgoParallel   = "parallel"
	AlgoCounting   = "counting"
	AlgoComparator = "comparator"
)

// Fallback reasons.
const (
	reasonRange      = "range"
	reasonAllocation = "allocation"
	reasonExecutor   = "executor"
)

// customPayload is the dispatch hook for Custom, whose instantiations a type
// switch cannot enumerate.
type customPayload interface {
	Payload
	payload() Payload
	sortWith(flags Flags) (Outcome, string)
}

// Sort sorts req.Data in place.
func (s *Sorter) Sort(req Request) Outcome {
	return s.SortContext(context.Background(), req)
}

// SortContext is Sort with a parent context for tracing. A sort is never
// abandoned once started, so cancellation has no effect.
func (s *Sorter) SortContext(ctx context.Context, req Request) Outcome {
	if req.Data == nil {
		return InvalidArgument
	}
	flags := req.Flags
	if flags == 0 {
		flags = DefaultFlags()
	}
	flags = flags.normalize()

	kind, n := req.Data.kind(), req.Data.length()
	ctx, span := s.tracer.Start(ctx, "vsort.sort", trace.WithAttributes(
		attribute.String("vsort.kind", kind),
		attribute.Int("vsort.n", n),
		attribute.String("vsort.flags", flags.String()),
	))
	defer span.End()

	start := time.Now()
	out, algo := s.dispatch(ctx, req.Data, flags)
	span.SetAttributes(
		attribute.String("vsort.algorithm", algo),
		attribute.String("vsort.outcome", out.String()),
	)
	if out == Ok {
		s.recorder.ObserveSort(kind, algo, n, time.Since(start))
	}
	return out
}

func (s *Sorter) dispatch(ctx context.Context, data Payload, flags Flags) (Outcome, string) {
	switch d := data.(type) {
	case Int32Slice:
		return sortNumeric(ctx, s, numericPath[int32]{
			kind:  d.kind(),
			slot:  s.buffers.Int32,
			radix: engine.RadixSort[int32],
		}, []int32(d), flags)
	case Float32Slice:
		return sortNumeric(ctx, s, numericPath[float32]{
			kind: d.kind(),
			slot: s.buffers.Float32,
		}, []float32(d), flags)
	case ByteSlice:
		if len(d) <= 1 {
			return Ok, AlgoNone
		}
		engine.CountingSort(d)
		return Ok, AlgoCounting
	}

	// Anything else satisfying Payload embeds one of the kinds above. Only a
	// bare Custom is accepted.
	cp, ok := data.(customPayload)
	if !ok || reflect.TypeOf(cp.payload()) != reflect.TypeOf(data) {
		return UnsupportedType, AlgoNone
	}
	return cp.sortWith(flags)
}

func (c Custom[T]) sortWith(flags Flags) (Outcome, string) {
	var zero T
	if c.Compare == nil || unsafe.Sizeof(zero) == 0 {
		return InvalidArgument, AlgoNone
	}
	if len(c.Data) <= 1 {
		return Ok, AlgoNone
	}
	if flags.Has(ForceStable) {
		engine.SortStableFunc(c.Data, c.Compare)
	} else {
		engine.SortFunc(c.Data, c.Compare)
	}
	return Ok, AlgoComparator
}

// numericPath is what differs between the int32 and float32 decision trees.
type numericPath[T engine.Element] struct {
	kind string
	slot *pool.Slot[T]
	// radix is nil for kinds radix sort cannot key.
	radix func([]T, *memory.Budget) error
}

func sortNumeric[T engine.Element](ctx context.Context, s *Sorter, p numericPath[T], data []T, flags Flags) (Outcome, string) {
	n := len(data)
	if n <= 1 {
		return Ok, AlgoNone
	}
	opts := engine.Options{
		InsertionThreshold: s.thresholds.Insertion,
		VectorPartition:    flags.Has(ForceSIMD) || (s.profile.HasSIMD() && flags.Has(PreferThroughput)),
	}

	if flags.Has(ForceStable) {
		if stableSort(s, p, data) {
			return Ok, AlgoMergesort
		}
		engine.Introsort(data, opts)
		return Ok, AlgoIntrosort
	}

	if engine.IsNearlySorted(data, s.thresholds.SampleSize) {
		engine.InsertionSort(data)
		return Ok, AlgoInsertion
	}

	if p.radix != nil && flags.Has(AllowRadix) && n >= s.thresholds.Radix {
		err := p.radix(data, s.budget)
		if err == nil {
			return Ok, AlgoRadix
		}
		reason := reasonAllocation
		if errors.Is(err, engine.ErrRadixRange) {
			reason = reasonRange
		}
		s.fallback(AlgoRadix, AlgoIntrosort, reason, err, n)
		engine.Introsort(data, opts)
		return Ok, AlgoIntrosort
	}

	parallelMin := s.thresholds.Parallel
	qos := parallel.QoSUserInitiated
	if flags.Has(PreferEfficiency) {
		parallelMin *= 2
		qos = parallel.QoSUtility
	}
	if flags.Has(AllowParallel) && n >= parallelMin && s.executor.Parallel() {
		err := orchestration.Run(ctx, orchestration.Config{
			Thresholds:      s.thresholds,
			Executor:        s.executor,
			QoS:             qos,
			VectorPartition: opts.VectorPartition,
			Budget:          s.budget,
			Tracer:          s.tracer,
			Logger:          s.logger,
		}, p.slot, data)
		if err == nil {
			return Ok, AlgoParallel
		}
		reason := reasonExecutor
		if apperrors.IsMemoryError(err) {
			reason = reasonAllocation
		}
		// data is still a permutation of the input; finish sequentially.
		s.fallback(AlgoParallel, AlgoIntrosort, reason, err, n)
		engine.Introsort(data, opts)
		return Ok, AlgoIntrosort
	}

	engine.Introsort(data, opts)
	return Ok, AlgoIntrosort
}

// stableSort runs mergesort with the pooled buffer, or a transient one when
// the slot is busy. It reports false when neither could be had.
func stableSort[T engine.Element](s *Sorter, p numericPath[T], data []T) bool {
	n := len(data)
	lease, ok := p.slot.Acquire(n)
	s.recorder.PoolAcquire(p.kind, ok)
	if ok {
		defer lease.Release()
		engine.MergeSort(data, lease.Buffer(), s.thresholds.Insertion)
		return true
	}

	buf, err := memory.Alloc[T](s.budget, n)
	if err != nil {
		s.fallback(AlgoMergesort, AlgoIntrosort, reasonAllocation, err, n)
		return false
	}
	defer memory.Free(s.budget, buf)
	engine.MergeSort(data, buf, s.thresholds.Insertion)
	return true
}

func (s *Sorter) fallback(from, to, reason string, err error, n int) {
	s.logger.Warn("strategy fell back",
		logging.String("from", from),
		logging.String("to", to),
		logging.String("reason", reason),
		logging.Int("n", n),
		logging.Err(err))
	s.recorder.Fallback(from, to, reason)
}
