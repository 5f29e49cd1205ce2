package pool

import "github.com/agbru/vsort/internal/memory"

// Stats are cumulative slot counters.
type Stats struct {
	// Acquired counts successful leases.
	Acquired uint64
	// Contended counts Acquire calls that found the slot taken.
	Contended uint64
	// Grown counts buffer reallocations.
	Grown uint64
	// Failed counts growths refused by the memory budget.
	Failed uint64
}

// Add returns the field-wise sum.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Acquired:  s.Acquired + o.Acquired,
		Contended: s.Contended + o.Contended,
		Grown:     s.Grown + o.Grown,
		Failed:    s.Failed + o.Failed,
	}
}

// MergeBuffers is the per-kind merge buffer pool owned by a sorter.
type MergeBuffers struct {
	Int32   *Slot[int32]
	Float32 *Slot[float32]
}

// NewMergeBuffers returns empty slots charged to budget.
func NewMergeBuffers(budget *memory.Budget) *MergeBuffers {
	return &MergeBuffers{
		Int32:   NewSlot[int32](budget),
		Float32: NewSlot[float32](budget),
	}
}

// Warm grows both slots to n elements ahead of the first sort.
func (m *MergeBuffers) Warm(n int) error {
	l32, err := m.Int32.TryAcquire(n)
	if err != nil {
		return err
	}
	l32.Release()
	lf, err := m.Float32.TryAcquire(n)
	if err != nil {
		return err
	}
	lf.Release()
	return nil
}

// Stats returns the counters of both slots combined.
func (m *MergeBuffers) Stats() Stats {
	return m.Int32.Stats().Add(m.Float32.Stats())
}

// Close frees idle buffers. Slots leased at the time keep theirs.
func (m *MergeBuffers) Close() {
	m.Int32.Drain()
	m.Float32.Drain()
}
