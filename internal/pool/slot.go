package pool

import (
	"errors"
	"sync/atomic"

	"github.com/agbru/vsort/internal/memory"
)

// ErrBusy is returned by TryAcquire when the slot is already leased.
var ErrBusy = errors.New("pool: slot busy")

// Slot holds a growable buffer guarded by a test-and-set ownership flag.
// The zero value is not usable; create slots with NewSlot.
type Slot[T any] struct {
	busy     atomic.Bool
	buf      []T
	capacity atomic.Int64
	budget   *memory.Budget

	acquired  atomic.Uint64
	contended atomic.Uint64
	grown     atomic.Uint64
	failed    atomic.Uint64
}

// NewSlot returns an empty slot whose growth is charged to budget (nil for
// unlimited).
func NewSlot[T any](budget *memory.Budget) *Slot[T] {
	return &Slot[T]{budget: budget}
}

// Acquire takes exclusive ownership of the slot's buffer, grown to at least
// n elements. It returns false immediately if another owner holds the slot
// or if growth fails; a failed growth leaves the slot free.
func (s *Slot[T]) Acquire(n int) (*Lease[T], bool) {
	l, err := s.TryAcquire(n)
	return l, err == nil
}

// TryAcquire is Acquire reporting why it failed: ErrBusy, or the budget's
// MemoryError.
func (s *Slot[T]) TryAcquire(n int) (*Lease[T], error) {
	if !s.busy.CompareAndSwap(false, true) {
		s.contended.Add(1)
		return nil, ErrBusy
	}
	if cap(s.buf) < n {
		grown, err := memory.Alloc[T](s.budget, n)
		if err != nil {
			s.failed.Add(1)
			s.busy.Store(false)
			return nil, err
		}
		memory.Free(s.budget, s.buf)
		s.buf = grown
		s.capacity.Store(int64(n))
		s.grown.Add(1)
	}
	s.acquired.Add(1)
	return &Lease[T]{slot: s, buf: s.buf[:n]}, nil
}

// Capacity returns the current buffer capacity in elements. It never
// decreases except through Drain.
func (s *Slot[T]) Capacity() int {
	return int(s.capacity.Load())
}

// Busy reports whether the slot is currently leased.
func (s *Slot[T]) Busy() bool {
	return s.busy.Load()
}

// Drain frees the buffer if the slot is idle and reports whether it did.
func (s *Slot[T]) Drain() bool {
	if !s.busy.CompareAndSwap(false, true) {
		return false
	}
	memory.Free(s.budget, s.buf)
	s.buf = nil
	s.capacity.Store(0)
	s.busy.Store(false)
	return true
}

// Stats returns the slot's counters.
func (s *Slot[T]) Stats() Stats {
	return Stats{
		Acquired:  s.acquired.Load(),
		Contended: s.contended.Load(),
		Grown:     s.grown.Load(),
		Failed:    s.failed.Load(),
	}
}

// Lease is the ownership handle returned by Acquire.
type Lease[T any] struct {
	slot     *Slot[T]
	buf      []T
	released atomic.Bool
}

// Buffer returns the leased buffer, or nil once the lease is released.
func (l *Lease[T]) Buffer() []T {
	if l == nil || l.released.Load() {
		return nil
	}
	return l.buf
}

// Release hands the buffer back to the slot. Releasing twice is a no-op.
func (l *Lease[T]) Release() {
	if l == nil || !l.released.CompareAndSwap(false, true) {
		return
	}
	l.buf = nil
	l.slot.busy.Store(false)
}
