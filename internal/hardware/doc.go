// Package hardware probes the processor once per process and publishes an
// immutable Profile: core counts (split into performance and efficiency cores
// on hybrid parts), cache geometry, SIMD capability and a model label.
//
// Probing never fails. Each probe fills only the fields its predecessors left
// empty, and whatever is still unknown at the end takes a conservative
// default (one core, 32 KiB L1, 2 MiB L2, 64-byte lines, no SIMD).
package hardware
