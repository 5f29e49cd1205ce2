package memory

import (
	"sync/atomic"
	"unsafe"

	apperrors "github.com/agbru/vsort/internal/errors"
)

// Budget tracks scratch bytes currently held against an optional limit.
// A nil *Budget is valid and unlimited. All methods are safe for concurrent
// use.
type Budget struct {
	limit int64
	inUse atomic.Int64
	peak  atomic.Int64
}

// NewBudget returns a budget capped at limit bytes; limit <= 0 means no cap
// (usage is still tracked).
func NewBudget(limit int64) *Budget {
	return &Budget{limit: max(limit, 0)}
}

// Limit returns the cap in bytes, 0 when unlimited.
func (b *Budget) Limit() int64 {
	if b == nil {
		return 0
	}
	return b.limit
}

// InUse returns the bytes currently reserved.
func (b *Budget) InUse() int64 {
	if b == nil {
		return 0
	}
	return b.inUse.Load()
}

// Peak returns the high-water mark of InUse.
func (b *Budget) Peak() int64 {
	if b == nil {
		return 0
	}
	return b.peak.Load()
}

// Reserve claims n bytes or returns a MemoryError if that would exceed the
// limit. Nothing is claimed on failure.
func (b *Budget) Reserve(n int64) error {
	if b == nil || n <= 0 {
		return nil
	}
	for {
		cur := b.inUse.Load()
		next := cur + n
		if b.limit > 0 && (next > b.limit || next < cur) {
			return apperrors.MemoryError{
				Requested: uint64(n),
				Available: uint64(max(b.limit-cur, 0)),
				Limit:     uint64(b.limit),
			}
		}
		if b.inUse.CompareAndSwap(cur, next) {
			b.raisePeak(next)
			return nil
		}
	}
}

// Release returns n bytes previously reserved.
func (b *Budget) Release(n int64) {
	if b == nil || n <= 0 {
		return
	}
	b.inUse.Add(-n)
}

func (b *Budget) raisePeak(v int64) {
	for {
		p := b.peak.Load()
		if v <= p || b.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// SizeOf returns the byte size of n elements of T.
func SizeOf[T any](n int) int64 {
	var zero T
	return int64(n) * int64(unsafe.Sizeof(zero))
}

// Alloc returns a zeroed slice of n elements charged to b.
func Alloc[T any](b *Budget, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := b.Reserve(SizeOf[T](n)); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// Free returns the capacity of s to b. s must not be used afterwards.
func Free[T any](b *Budget, s []T) {
	b.Release(SizeOf[T](cap(s)))
}
