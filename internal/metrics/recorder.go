package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder receives dispatcher events. Implementations must be safe for
// concurrent use and must never block the sort.
type Recorder interface {
	// ObserveSort records one completed sort.
	ObserveSort(kind, algorithm string, n int, d time.Duration)
	// Fallback records a strategy abandoned in favour of another.
	Fallback(from, to, reason string)
	// PoolAcquire records a merge buffer lease attempt.
	PoolAcquire(kind string, ok bool)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) ObserveSort(string, string, int, time.Duration) {}
func (NopRecorder) Fallback(string, string, string)                {}
func (NopRecorder) PoolAcquire(string, bool)                       {}

// PrometheusRecorder exports events as Prometheus metrics on its own
// registry.
type PrometheusRecorder struct {
	registry  *prometheus.Registry
	sorts     *prometheus.CounterVec
	elements  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
	pool      *prometheus.CounterVec
}

// NewPrometheusRecorder creates the metric vectors and registers them,
// together with a heap gauge fed by MemoryCollector.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		sorts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vsort",
			Name:      "sorts_total",
			Help:      "Completed sorts by element kind and algorithm.",
		}, []string{"kind", "algorithm"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vsort",
			Name:      "elements_sorted_total",
			Help:      "Elements sorted by element kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vsort",
			Name:      "sort_duration_seconds",
			Help:      "Wall time of a sort by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"algorithm"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vsort",
			Name:      "fallbacks_total",
			Help:      "Strategies abandoned for a fallback, by reason.",
		}, []string{"from", "to", "reason"}),
		pool: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vsort",
			Name:      "merge_buffer_acquire_total",
			Help:      "Merge buffer lease attempts by element kind and result.",
		}, []string{"kind", "acquired"}),
	}

	mc := NewMemoryCollector()
	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "vsort",
		Name:      "heap_alloc_bytes",
		Help:      "Bytes of allocated heap objects.",
	}, func() float64 { return float64(mc.Snapshot().HeapAlloc) })

	r.registry.MustRegister(r.sorts, r.elements, r.duration, r.fallbacks, r.pool, heap)
	return r
}

// ObserveSort implements Recorder.
func (r *PrometheusRecorder) ObserveSort(kind, algorithm string, n int, d time.Duration) {
	r.sorts.WithLabelValues(kind, algorithm).Inc()
	r.elements.WithLabelValues(kind).Add(float64(n))
	r.duration.WithLabelValues(algorithm).Observe(d.Seconds())
}

// Fallback implements Recorder.
func (r *PrometheusRecorder) Fallback(from, to, reason string) {
	r.fallbacks.WithLabelValues(from, to, reason).Inc()
}

// PoolAcquire implements Recorder.
func (r *PrometheusRecorder) PoolAcquire(kind string, ok bool) {
	r.pool.WithLabelValues(kind, strconv.FormatBool(ok)).Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes every metric in the Prometheus text exposition format.
func (r *PrometheusRecorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
