package list

import "github.com/FairForge/adtkit/internal/memnode"

// none is the nil handle.
const none int32 = -1

// arenaHint caps the cells reserved up front for large capacities.
const arenaHint = 64

type cell struct {
	node memnode.Node
	next int32
	prev int32
}

// arena owns every cell of one list. Links are indices into cells, and
// released cells are chained through next for reuse.
type arena struct {
	cells []cell
	free  int32
}

func newArena(capacity int) arena {
	return arena{
		cells: make([]cell, 0, min(capacity, arenaHint)),
		free:  none,
	}
}

func (a *arena) get(i int32) *cell {
	return &a.cells[i]
}

// acquire stores n in a free cell and returns its handle.
func (a *arena) acquire(n memnode.Node) int32 {
	if a.free != none {
		i := a.free
		a.free = a.cells[i].next
		a.cells[i] = cell{node: n, next: none, prev: none}
		return i
	}
	a.cells = append(a.cells, cell{node: n, next: none, prev: none})
	return int32(len(a.cells) - 1)
}

// release puts cell i on the free list. The node must already be empty.
func (a *arena) release(i int32) {
	a.cells[i] = cell{next: a.free, prev: none}
	a.free = i
}

func (a *arena) clear() {
	a.cells = a.cells[:0]
	a.free = none
}

// inUse is the number of cells not on the free list.
func (a *arena) inUse() int {
	n := len(a.cells)
	for i := a.free; i != none; i = a.cells[i].next {
		n--
	}
	return n
}
