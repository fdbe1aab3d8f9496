package memory

// Budget caps the number of bytes outstanding through another allocator.
// Once the cap would be exceeded Allocate returns nil, which containers
// surface as an allocation failure.
type Budget struct {
	next  Allocator
	limit int64
	stats stats
}

// NewBudget wraps next (Heap when nil) with a limit in bytes.
func NewBudget(next Allocator, limit int64) *Budget {
	return &Budget{next: OrHeap(next), limit: limit}
}

// Allocate returns a buffer of n bytes while the budget allows it
func (b *Budget) Allocate(n int) []byte {
	if n <= 0 {
		b.stats.failures.Add(1)
		return nil
	}
	for {
		used := b.stats.bytesInUse.Load()
		if used+int64(n) > b.limit {
			b.stats.failures.Add(1)
			return nil
		}
		if b.stats.bytesInUse.CompareAndSwap(used, used+int64(n)) {
			break
		}
	}

	buf := b.next.Allocate(n)
	if buf == nil {
		b.stats.bytesInUse.Add(-int64(n))
		b.stats.failures.Add(1)
		return nil
	}
	b.stats.allocations.Add(1)
	return buf
}

// Free gives the buffer's bytes back to the budget
func (b *Budget) Free(buf []byte) {
	if buf == nil {
		return
	}
	b.stats.frees.Add(1)
	b.stats.bytesInUse.Add(-int64(len(buf)))
	b.next.Free(buf)
}

// Remaining reports how many bytes may still be allocated
func (b *Budget) Remaining() int64 {
	return b.limit - b.stats.bytesInUse.Load()
}

// Stats returns a snapshot of budget statistics
func (b *Budget) Stats() Stats {
	return b.stats.snapshot()
}
