package list

import (
	"fmt"
	"io"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/memnode"
	"github.com/FairForge/adtkit/internal/memory"
)

// chain is the storage shared by List and DLList. When doubly is false the
// prev links are never maintained.
type chain struct {
	kind     string
	doubly   bool
	cells    arena
	head     int32
	tail     int32
	length   int
	capacity int
	alloc    memory.Allocator
	obs      container.Observer
	released bool
	// orphan marks the placeholder standing in for a nil List or DLList.
	orphan bool
}

func newChain(kind string, doubly bool, capacity int, opts *container.Options) (*chain, error) {
	o := container.Resolve(opts)
	obs := container.NewObserver(kind, o)

	if capacity <= 0 {
		return nil, obs.Done(container.OpCreate, container.ErrSizeZero)
	}
	if capacity > container.MaxCapacity {
		return nil, obs.Done(container.OpCreate, container.ErrNotEnoughCapacity)
	}

	c := &chain{
		kind:     kind,
		doubly:   doubly,
		cells:    newArena(capacity),
		head:     none,
		tail:     none,
		capacity: capacity,
		alloc:    o.Allocator,
		obs:      obs,
	}
	return c, obs.Done(container.OpCreate, nil)
}

// orphanChain is what a nil List or DLList forwards to.
func orphanChain(kind string) *chain {
	return &chain{kind: kind, head: none, tail: none, orphan: true}
}

func (c *chain) done(op string, err error) error {
	if c == nil {
		return container.WrapError(kindList, op, err)
	}
	if c.orphan {
		return container.WrapError(c.kind, op, err)
	}
	return c.obs.Done(op, err)
}

func (c *chain) check() error {
	if c == nil || c.orphan {
		return container.ErrListNull
	}
	if c.released {
		return container.ErrStorageNull
	}
	return nil
}

func (c *chain) Length() int {
	if c == nil {
		return 0
	}
	return c.length
}

func (c *chain) Capacity() int {
	if c == nil {
		return 0
	}
	return c.capacity
}

func (c *chain) IsEmpty() bool {
	return c.Length() == 0
}

func (c *chain) IsFull() bool {
	if c == nil || c.orphan || c.released {
		return false
	}
	return c.length >= c.capacity
}

// locate returns the handle at index and the handle before it. A doubly
// linked chain walks from whichever end is closer.
func (c *chain) locate(index int) (cur, prev int32, err error) {
	if c.doubly && index > c.length/2 {
		cur = c.tail
		for k := c.length - 1; k > index && cur != none; k-- {
			cur = c.cells.get(cur).prev
		}
		if cur == none {
			return none, none, container.ErrFirstNull
		}
		return cur, c.cells.get(cur).prev, nil
	}

	cur, prev = c.head, none
	for k := 0; k < index && cur != none; k++ {
		prev, cur = cur, c.cells.get(cur).next
	}
	if cur == none {
		return none, none, container.ErrFirstNull
	}
	return cur, prev, nil
}

func (c *chain) peek(op string, index int) ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, c.done(op, err)
	}
	if c.length == 0 {
		return nil, c.done(op, container.ErrListEmpty)
	}
	if index < 0 || index >= c.length {
		return nil, c.done(op, container.ErrInvalidIndex)
	}
	cur, _, err := c.locate(index)
	if err != nil {
		return nil, c.done(op, err)
	}
	return c.cells.get(cur).node.Data(), nil
}

func (c *chain) First() ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, c.done(container.OpFirst, err)
	}
	if c.length == 0 {
		return nil, c.done(container.OpFirst, container.ErrListEmpty)
	}
	if c.head == none {
		return nil, c.done(container.OpFirst, container.ErrFirstNull)
	}
	return c.cells.get(c.head).node.Data(), nil
}

func (c *chain) Last() ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, c.done(container.OpLast, err)
	}
	if c.length == 0 {
		return nil, c.done(container.OpLast, container.ErrListEmpty)
	}
	if c.tail == none {
		return nil, c.done(container.OpLast, container.ErrFirstNull)
	}
	return c.cells.get(c.tail).node.Data(), nil
}

func (c *chain) At(index int) ([]byte, error) {
	return c.peek(container.OpAt, index)
}

// newCell copies data into a fresh cell that is not linked yet.
func (c *chain) newCell(data []byte) (int32, error) {
	if err := container.ValidatePayload(data); err != nil {
		return none, err
	}
	if c.length >= c.capacity {
		return none, container.ErrNotEnoughCapacity
	}
	n := memnode.NewLite(c.alloc)
	if err := n.MemCopy(data); err != nil {
		return none, err
	}
	return c.cells.acquire(n), nil
}

func (c *chain) linkFirst(i int32) {
	cl := c.cells.get(i)
	cl.next = c.head
	if c.doubly && c.head != none {
		c.cells.get(c.head).prev = i
	}
	c.head = i
	if c.tail == none {
		c.tail = i
	}
	c.length++
}

func (c *chain) linkLast(i int32) {
	if c.doubly {
		c.cells.get(i).prev = c.tail
	}
	if c.tail == none {
		c.head = i
	} else {
		c.cells.get(c.tail).next = i
	}
	c.tail = i
	c.length++
}

func (c *chain) linkAfter(p, i int32) {
	cl, pl := c.cells.get(i), c.cells.get(p)
	cl.next = pl.next
	if c.doubly {
		cl.prev = p
		if cl.next != none {
			c.cells.get(cl.next).prev = i
		}
	}
	pl.next = i
	if c.tail == p {
		c.tail = i
	}
	c.length++
}

// unlink detaches cell i, whose predecessor is prev, and returns its buffer.
func (c *chain) unlink(i, prev int32) []byte {
	cl := c.cells.get(i)
	next := cl.next
	if prev == none {
		c.head = next
	} else {
		c.cells.get(prev).next = next
	}
	if next == none {
		c.tail = prev
	} else if c.doubly {
		c.cells.get(next).prev = prev
	}
	data := cl.node.Take()
	c.cells.release(i)
	c.length--
	return data
}

func (c *chain) InsertFirst(data []byte) error {
	if err := c.check(); err != nil {
		return c.done(container.OpInsertFirst, err)
	}
	i, err := c.newCell(data)
	if err != nil {
		return c.done(container.OpInsertFirst, err)
	}
	c.linkFirst(i)
	return c.done(container.OpInsertFirst, nil)
}

func (c *chain) InsertLast(data []byte) error {
	if err := c.check(); err != nil {
		return c.done(container.OpInsertLast, err)
	}
	i, err := c.newCell(data)
	if err != nil {
		return c.done(container.OpInsertLast, err)
	}
	c.linkLast(i)
	return c.done(container.OpInsertLast, nil)
}

// InsertAt links a copy of data so it ends up at index. Index 0 prepends and
// indices at or past the end append.
func (c *chain) InsertAt(data []byte, index int) error {
	return c.done(container.OpInsertAt, c.insertAt(data, index))
}

func (c *chain) insertAt(data []byte, index int) error {
	if err := c.check(); err != nil {
		return err
	}
	if index < 0 {
		return container.ErrInvalidIndex
	}

	prev := none
	if index > 0 && index < c.length {
		p, _, err := c.locate(index - 1)
		if err != nil {
			return err
		}
		prev = p
	}

	i, err := c.newCell(data)
	if err != nil {
		return err
	}
	switch {
	case index == 0:
		c.linkFirst(i)
	case index >= c.length:
		c.linkLast(i)
	default:
		c.linkAfter(prev, i)
	}
	return nil
}

func (c *chain) extract(op string, index int) ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, c.done(op, err)
	}
	if c.length == 0 {
		return nil, c.done(op, container.ErrListEmpty)
	}
	if index < 0 || index >= c.length {
		return nil, c.done(op, container.ErrInvalidIndex)
	}
	cur, prev, err := c.locate(index)
	if err != nil {
		return nil, c.done(op, err)
	}
	return c.unlink(cur, prev), c.done(op, nil)
}

func (c *chain) ExtractFirst() ([]byte, error) {
	return c.extract(container.OpExtractFirst, 0)
}

func (c *chain) ExtractLast() ([]byte, error) {
	return c.extract(container.OpExtractLast, c.Length()-1)
}

func (c *chain) ExtractAt(index int) ([]byte, error) {
	return c.extract(container.OpExtractAt, index)
}

// Resize changes the capacity. Shrinking below the current length releases
// the elements past the new capacity.
func (c *chain) Resize(capacity int) error {
	return c.done(container.OpResize, c.resize(capacity))
}

func (c *chain) resize(capacity int) error {
	if err := c.check(); err != nil {
		return err
	}
	if capacity <= 0 {
		return container.ErrSizeZero
	}
	if capacity > container.MaxCapacity {
		return container.ErrNotEnoughCapacity
	}

	if capacity < c.length {
		last, _, err := c.locate(capacity - 1)
		if err != nil {
			return err
		}
		for i := c.cells.get(last).next; i != none; {
			next := c.cells.get(i).next
			c.dropCell(i)
			i = next
		}
		c.cells.get(last).next = none
		c.tail = last
		c.length = capacity
	}
	c.capacity = capacity
	return nil
}

func (c *chain) dropCell(i int32) {
	n := &c.cells.get(i).node
	if !n.IsEmpty() {
		_ = n.Reset()
	}
	c.cells.release(i)
}

// Concat appends copies of every element of src and raises the capacity by
// the capacity of src. src is left unchanged and may be c itself.
func (c *chain) Concat(src *chain) error {
	return c.done(container.OpConcat, c.concat(src))
}

func (c *chain) concat(src *chain) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := src.check(); err != nil {
		return err
	}
	capacity := c.capacity + src.capacity
	if capacity > container.MaxCapacity {
		return container.ErrNotEnoughCapacity
	}

	copies := make([]memnode.Node, 0, src.length)
	for i := src.head; i != none; i = src.cells.get(i).next {
		n := memnode.NewLite(c.alloc)
		if err := n.MemCopy(src.cells.get(i).node.Data()); err != nil {
			for k := range copies {
				_ = copies[k].Reset()
			}
			return err
		}
		copies = append(copies, n)
	}

	for _, n := range copies {
		c.linkLast(c.cells.acquire(n))
	}
	c.capacity = capacity
	return nil
}

func (c *chain) Reset() error {
	if err := c.check(); err != nil {
		return c.done(container.OpReset, err)
	}
	c.clear(true)
	return c.done(container.OpReset, nil)
}

func (c *chain) SoftReset() error {
	if err := c.check(); err != nil {
		return c.done(container.OpSoftReset, err)
	}
	c.clear(false)
	return c.done(container.OpSoftReset, nil)
}

func (c *chain) clear(free bool) {
	for i := c.head; i != none; i = c.cells.get(i).next {
		n := &c.cells.get(i).node
		if free && !n.IsEmpty() {
			_ = n.Reset()
			continue
		}
		_ = n.SoftReset()
	}
	c.cells.clear()
	c.head, c.tail = none, none
	c.length = 0
}

func (c *chain) Destroy() error {
	if c == nil || c.orphan {
		return c.done(container.OpDestroy, container.ErrListNull)
	}
	if !c.released {
		c.clear(true)
		c.cells = arena{free: none}
		c.released = true
	}
	return c.done(container.OpDestroy, nil)
}

func (c *chain) Traverse(fn func(container.Node)) error {
	if err := c.check(); err != nil {
		return c.done(container.OpTraverse, err)
	}
	if fn == nil {
		return c.done(container.OpTraverse, container.ErrNull)
	}
	for i := c.head; i != none; i = c.cells.get(i).next {
		fn(&c.cells.get(i).node)
	}
	return c.done(container.OpTraverse, nil)
}

func (c *chain) Print(w io.Writer) {
	if c == nil || c.orphan || c.released {
		_, _ = fmt.Fprintln(w, "null")
		return
	}
	_, _ = fmt.Fprintf(w, "[%s %s] length: %d capacity: %d\n",
		c.kind, c.obs.ID, c.length, c.capacity)
	k := 0
	for i := c.head; i != none; i = c.cells.get(i).next {
		_, _ = fmt.Fprintf(w, "  [%d] ", k)
		c.cells.get(i).node.Print(w)
		k++
	}
}
