// Package metrics records what the dispatcher decided and how long it took.
// PrometheusRecorder exports counters and histograms on a private registry
// that the CLI prints in the Prometheus text format; NopRecorder discards
// everything. MemoryCollector samples runtime memory statistics for the
// benchmark report.
package metrics
