// Package pool keeps one reusable merge buffer per element kind. A buffer
// has at most one owner at a time; Acquire never blocks and reports failure
// instead, leaving the caller to allocate a transient buffer.
package pool
