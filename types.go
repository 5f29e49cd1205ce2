package vsort

import (
	"errors"
	"strings"
)

// Flags tune strategy selection. The zero value means "use DefaultFlags".
type Flags uint32

const (
	// AllowParallel permits the fork-join path on large inputs.
	AllowParallel Flags = 1 << iota
	// AllowRadix permits radix sort on large integer inputs.
	AllowRadix
	// ForceStable requires equal elements to keep their input order.
	ForceStable
	// PreferThroughput favours wall-clock time.
	PreferThroughput
	// PreferEfficiency raises the parallel threshold and runs workers at
	// utility priority.
	PreferEfficiency
	// ForceSIMD uses the lane-masked partition even when the processor
	// reports no vector unit.
	ForceSIMD
)

// StandardFlags is the process-wide default until SetDefaultFlags changes it.
const StandardFlags = AllowParallel | AllowRadix | PreferThroughput

var flagNames = []struct {
	flag Flags
	name string
}{
	{AllowParallel, "parallel"},
	{AllowRadix, "radix"},
	{ForceStable, "stable"},
	{PreferThroughput, "throughput"},
	{PreferEfficiency, "efficiency"},
	{ForceSIMD, "simd"},
}

// Has reports whether every bit of x is set.
func (f Flags) Has(x Flags) bool { return f&x == x }

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// normalize makes the two preference bits mutually exclusive, with
// throughput winning a tie and being implied when neither is set.
func (f Flags) normalize() Flags {
	switch {
	case f.Has(PreferThroughput | PreferEfficiency):
		return f &^ PreferEfficiency
	case f&(PreferThroughput|PreferEfficiency) == 0:
		return f | PreferThroughput
	}
	return f
}

// Outcome is the result of a sort request.
type Outcome int

const (
	Ok Outcome = iota
	// InvalidArgument: a nil payload, a comparator payload without a
	// comparator, or a zero-size element type.
	InvalidArgument
	// AllocationFailed is recovered internally by falling back to an
	// in-place algorithm; it is reported only by components that cannot
	// fall back.
	AllocationFailed
	// UnsupportedType: a payload that is not one of this package's kinds.
	UnsupportedType
)

// Sentinel errors returned by Outcome.Err.
var (
	ErrInvalidArgument  = errors.New("vsort: invalid argument")
	ErrAllocationFailed = errors.New("vsort: allocation failed")
	ErrUnsupportedType  = errors.New("vsort: unsupported element type")
)

func (o Outcome) String() string {
	switch o {
	case Ok:
		return "ok"
	case InvalidArgument:
		return "invalid argument"
	case AllocationFailed:
		return "allocation failed"
	case UnsupportedType:
		return "unsupported type"
	}
	return "unknown"
}

// Err maps the outcome onto a sentinel error, nil for Ok.
func (o Outcome) Err() error {
	switch o {
	case Ok:
		return nil
	case InvalidArgument:
		return ErrInvalidArgument
	case AllocationFailed:
		return ErrAllocationFailed
	case UnsupportedType:
		return ErrUnsupportedType
	}
	return errors.New("vsort: " + o.String())
}

// Payload is the data to sort. It is implemented only by Int32Slice,
// Float32Slice, ByteSlice and Custom.
type Payload interface {
	kind() string
	length() int
}

// Int32Slice sorts 32-bit signed integers in ascending order.
type Int32Slice []int32

// Float32Slice sorts 32-bit floats in ascending order; -0 and +0 compare
// equal.
type Float32Slice []float32

// ByteSlice sorts bytes in ascending order. The sort is always stable.
type ByteSlice []byte

// Custom sorts any element type with a three-way comparator returning a
// negative number, zero or a positive number when a sorts before, equal
// to, or after b.
type Custom[T any] struct {
	Data    []T
	Compare func(a, b T) int
}

func (Int32Slice) kind() string      { return "int32" }
func (s Int32Slice) length() int     { return len(s) }
func (Float32Slice) kind() string    { return "float32" }
func (s Float32Slice) length() int   { return len(s) }
func (ByteSlice) kind() string       { return "bytes" }
func (s ByteSlice) length() int      { return len(s) }
func (Custom[T]) kind() string       { return "custom" }
func (c Custom[T]) length() int      { return len(c.Data) }
func (c Custom[T]) payload() Payload { return c }

// Request is one sort call. The payload is sorted in place and not retained.
type Request struct {
	Data  Payload
	Flags Flags
}
