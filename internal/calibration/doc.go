// Package calibration turns a hardware profile into the tuning constants the
// dispatcher uses (insertion, sample, parallel, radix and chunk sizes), and
// persists benchmark-refined constants between runs.
package calibration
