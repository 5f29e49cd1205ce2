// Package memory accounts for the scratch memory taken by the sorting
// engines. A Budget caps the bytes held at once, which turns exhaustion into
// an ordinary error the dispatcher can recover from instead of a runtime
// panic. GCController optionally suspends the collector around benchmarks.
package memory
