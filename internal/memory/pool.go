package memory

import (
	"math/bits"
	"sync"
)

const (
	// MinClass is the smallest pooled buffer size.
	MinClass = 16
	// DefaultMaxClass is the largest pooled buffer size unless configured.
	DefaultMaxClass = 64 * 1024
)

// Pool recycles buffers through power-of-two size classes. Requests larger
// than the biggest class are served by the heap and never pooled.
type Pool struct {
	classes  []sync.Pool
	maxClass int
	stats    stats
}

// NewPool creates a pool whose largest class holds maxClass bytes. maxClass
// is rounded up to a power of two; values below MinClass select the default.
func NewPool(maxClass int) *Pool {
	if maxClass < MinClass {
		maxClass = DefaultMaxClass
	}
	maxClass = roundPow2(maxClass)

	n := classIndex(maxClass) + 1
	p := &Pool{
		classes:  make([]sync.Pool, n),
		maxClass: maxClass,
	}
	for i := range p.classes {
		size := MinClass << i
		p.classes[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return p
}

// Allocate returns a buffer of length n
func (p *Pool) Allocate(n int) []byte {
	if n <= 0 {
		p.stats.failures.Add(1)
		return nil
	}
	p.stats.allocations.Add(1)
	p.stats.bytesInUse.Add(int64(n))

	if n > p.maxClass {
		return make([]byte, n)
	}
	bp := p.classes[classIndex(n)].Get().(*[]byte)
	buf := (*bp)[:n]
	clear(buf)
	return buf
}

// Free returns buf to its size class. Buffers that did not come from the
// pool are dropped.
func (p *Pool) Free(buf []byte) {
	if buf == nil {
		return
	}
	p.stats.frees.Add(1)
	p.stats.bytesInUse.Add(-int64(len(buf)))

	c := cap(buf)
	if c < MinClass || c > p.maxClass || c&(c-1) != 0 {
		return
	}
	buf = buf[:c]
	p.classes[classIndex(c)].Put(&buf)
}

// Stats returns a snapshot of pool statistics
func (p *Pool) Stats() Stats {
	return p.stats.snapshot()
}

// MaxClass returns the largest pooled buffer size
func (p *Pool) MaxClass() int {
	return p.maxClass
}

// classIndex maps a request size to the smallest class that fits it.
func classIndex(n int) int {
	if n <= MinClass {
		return 0
	}
	return bits.Len(uint(n-1)) - bits.Len(uint(MinClass-1))
}

func roundPow2(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}
