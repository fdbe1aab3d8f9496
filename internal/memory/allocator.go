package memory

import (
	"sync/atomic"

	"github.com/FairForge/adtkit/internal/metrics"
)

// Allocator hands out raw byte buffers.
type Allocator interface {
	// Allocate returns a buffer of exactly n bytes, or nil when it cannot.
	Allocate(n int) []byte
	// Free returns a buffer obtained from Allocate.
	Free(buf []byte)
}

// Stats tracks allocator traffic
type Stats struct {
	Allocations int64
	Frees       int64
	Failures    int64
	BytesInUse  int64
}

type stats struct {
	allocations atomic.Int64
	frees       atomic.Int64
	failures    atomic.Int64
	bytesInUse  atomic.Int64
}

func (s *stats) snapshot() Stats {
	return Stats{
		Allocations: s.allocations.Load(),
		Frees:       s.frees.Load(),
		Failures:    s.failures.Load(),
		BytesInUse:  s.bytesInUse.Load(),
	}
}

type heapAllocator struct{}

func (heapAllocator) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	return make([]byte, n)
}

func (heapAllocator) Free([]byte) {}

// Heap allocates straight from the Go heap and leaves reclamation to the GC.
var Heap Allocator = heapAllocator{}

// OrHeap returns a, or Heap when a is nil
func OrHeap(a Allocator) Allocator {
	if a == nil {
		return Heap
	}
	return a
}

type instrumented struct {
	next      Allocator
	collector *metrics.Collector
}

// Instrument wraps an allocator so that every request is reported to c.
func Instrument(a Allocator, c *metrics.Collector) Allocator {
	if c == nil {
		return OrHeap(a)
	}
	return &instrumented{next: OrHeap(a), collector: c}
}

func (i *instrumented) Allocate(n int) []byte {
	buf := i.next.Allocate(n)
	i.collector.RecordAlloc(n, buf != nil)
	return buf
}

func (i *instrumented) Free(buf []byte) {
	if buf == nil {
		return
	}
	i.collector.RecordFree(len(buf))
	i.next.Free(buf)
}
