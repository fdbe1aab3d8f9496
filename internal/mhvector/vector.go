// Package mhvector implements a vector whose first element can move, giving
// amortized O(1) inserts and extracts at both ends.
package mhvector

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/memnode"
	"github.com/FairForge/adtkit/internal/memory"
)

const kind = "mhvector"

var _ container.Sequence = (*Vector)(nil)

// Vector is an array of memory nodes whose first element can move inside an
// over-allocated backing array. Live elements occupy storage[head:tail].
// Removing from either end only moves a cursor; inserting at an end only
// shifts data when that end has run out of headroom, and then the whole
// block is re-centered so the next inserts are cheap again.
type Vector struct {
	storage  []memnode.Node
	head     int
	tail     int
	capacity int
	alloc    memory.Allocator
	obs      container.Observer
}

// New creates a vector holding at most capacity elements.
func New(capacity int, opts *container.Options) (*Vector, error) {
	o := container.Resolve(opts)
	obs := container.NewObserver(kind, o)

	if capacity <= 0 {
		return nil, obs.Done(container.OpCreate, container.ErrSizeZero)
	}
	if capacity > container.MaxCapacity {
		return nil, obs.Done(container.OpCreate, container.ErrNotEnoughCapacity)
	}

	physical := PhysicalLength(capacity)
	head := InitialHead(physical)
	v := &Vector{
		storage:  newStorage(physical, o.Allocator),
		head:     head,
		tail:     head,
		capacity: capacity,
		alloc:    o.Allocator,
		obs:      obs,
	}
	return v, obs.Done(container.OpCreate, nil)
}

func newStorage(n int, alloc memory.Allocator) []memnode.Node {
	s := make([]memnode.Node, n)
	for i := range s {
		s[i] = memnode.NewLite(alloc)
	}
	return s
}

func (v *Vector) done(op string, err error) error {
	if v == nil {
		return container.WrapError(kind, op, err)
	}
	return v.obs.Done(op, err)
}

func (v *Vector) check() error {
	if v == nil {
		return container.ErrVectorNull
	}
	if v.storage == nil {
		return container.ErrStorageNull
	}
	return nil
}

// Capacity returns the logical capacity
func (v *Vector) Capacity() int {
	if v == nil {
		return 0
	}
	return v.capacity
}

// Length returns the number of stored elements
func (v *Vector) Length() int {
	if v == nil {
		return 0
	}
	return v.tail - v.head
}

// IsEmpty reports whether the vector holds no elements
func (v *Vector) IsEmpty() bool {
	return v.Length() == 0
}

// IsFull reports whether the logical capacity is reached
func (v *Vector) IsFull() bool {
	if v == nil || v.storage == nil {
		return false
	}
	return v.Length() >= v.capacity
}

// Head returns the physical index of the first element
func (v *Vector) Head() int {
	if v == nil {
		return 0
	}
	return v.head
}

// Tail returns the physical index one past the last element
func (v *Vector) Tail() int {
	if v == nil {
		return 0
	}
	return v.tail
}

// Physical returns the length of the backing array
func (v *Vector) Physical() int {
	if v == nil {
		return 0
	}
	return len(v.storage)
}

// copyIn builds a node owning a copy of data.
func (v *Vector) copyIn(data []byte) (memnode.Node, error) {
	n := memnode.NewLite(v.alloc)
	if err := n.MemCopy(data); err != nil {
		return n, err
	}
	return n, nil
}

func (v *Vector) clearSlot(i int) {
	v.storage[i] = memnode.NewLite(v.alloc)
}

// recenter moves the live block to the middle of the backing array. Only
// node headers move; payload buffers stay where they are.
func (v *Vector) recenter() {
	length := v.tail - v.head
	head := Center(len(v.storage), length)
	if head == v.head {
		return
	}
	copy(v.storage[head:head+length], v.storage[v.head:v.tail])
	for i := v.head; i < v.tail; i++ {
		if i < head || i >= head+length {
			v.clearSlot(i)
		}
	}
	v.head, v.tail = head, head+length
	v.obs.Recentered(v.head, v.tail, len(v.storage))
}

// park moves the cursors of an empty vector back to the initial position.
func (v *Vector) park() {
	if v.head != v.tail {
		return
	}
	h := InitialHead(len(v.storage))
	v.head, v.tail = h, h
}

// First returns the first element by reference
func (v *Vector) First() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpFirst, err)
	}
	if v.IsEmpty() {
		return nil, v.done(container.OpFirst, container.ErrVectorEmpty)
	}
	return v.storage[v.head].Data(), nil
}

// Last returns the last element by reference
func (v *Vector) Last() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpLast, err)
	}
	if v.IsEmpty() {
		return nil, v.done(container.OpLast, container.ErrVectorEmpty)
	}
	return v.storage[v.tail-1].Data(), nil
}

// At returns the element at logical position by reference
func (v *Vector) At(position int) ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpAt, err)
	}
	if position < 0 || position >= v.Length() {
		return nil, v.done(container.OpAt, container.ErrPositionMismatch)
	}
	return v.storage[v.head+position].Data(), nil
}

// InsertFirst stores a copy of data in front of the first element.
func (v *Vector) InsertFirst(data []byte) error {
	return v.done(container.OpInsertFirst, v.insertFirst(data))
}

func (v *Vector) insertFirst(data []byte) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := container.ValidatePayload(data); err != nil {
		return err
	}
	if v.IsFull() {
		return container.ErrVectorFull
	}
	node, err := v.copyIn(data)
	if err != nil {
		return err
	}

	if v.head == 0 {
		v.recenter()
	}
	v.head--
	v.storage[v.head] = node
	return nil
}

// InsertLast stores a copy of data after the last element.
func (v *Vector) InsertLast(data []byte) error {
	return v.done(container.OpInsertLast, v.insertLast(data))
}

func (v *Vector) insertLast(data []byte) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := container.ValidatePayload(data); err != nil {
		return err
	}
	if v.IsFull() {
		return container.ErrVectorFull
	}
	node, err := v.copyIn(data)
	if err != nil {
		return err
	}

	if v.tail == len(v.storage) {
		v.recenter()
	}
	v.storage[v.tail] = node
	v.tail++
	return nil
}

// InsertAt stores a copy of data so that it ends up at logical position.
// Positions at or past the end append. The shorter side of the block is
// shifted to make room.
func (v *Vector) InsertAt(data []byte, position int) error {
	return v.done(container.OpInsertAt, v.insertAt(data, position))
}

func (v *Vector) insertAt(data []byte, position int) error {
	if err := v.check(); err != nil {
		return err
	}
	if position < 0 {
		return container.ErrPositionMismatch
	}
	length := v.Length()
	if position >= length {
		return v.insertLast(data)
	}
	if position == 0 {
		return v.insertFirst(data)
	}
	if err := container.ValidatePayload(data); err != nil {
		return err
	}
	if v.IsFull() {
		return container.ErrVectorFull
	}
	node, err := v.copyIn(data)
	if err != nil {
		return err
	}

	if position < length/2 {
		if v.head == 0 {
			v.recenter()
		}
		copy(v.storage[v.head-1:], v.storage[v.head:v.head+position])
		v.head--
	} else {
		if v.tail == len(v.storage) {
			v.recenter()
		}
		at := v.head + position
		copy(v.storage[at+1:v.tail+1], v.storage[at:v.tail])
		v.tail++
	}
	v.storage[v.head+position] = node
	return nil
}

// ExtractFirst removes the first element and hands its buffer to the caller.
func (v *Vector) ExtractFirst() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpExtractFirst, err)
	}
	if v.IsEmpty() {
		return nil, v.done(container.OpExtractFirst, container.ErrVectorEmpty)
	}
	data := v.storage[v.head].Take()
	v.head++
	v.park()
	return data, v.done(container.OpExtractFirst, nil)
}

// ExtractLast removes the last element and hands its buffer to the caller.
func (v *Vector) ExtractLast() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpExtractLast, err)
	}
	if v.IsEmpty() {
		return nil, v.done(container.OpExtractLast, container.ErrVectorEmpty)
	}
	v.tail--
	data := v.storage[v.tail].Take()
	v.park()
	return data, v.done(container.OpExtractLast, nil)
}

// ExtractAt removes the element at logical position and hands its buffer
// to the caller. The shorter side of the block closes the gap.
func (v *Vector) ExtractAt(position int) ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpExtractAt, err)
	}
	length := v.Length()
	if length == 0 {
		return nil, v.done(container.OpExtractAt, container.ErrVectorEmpty)
	}
	if position < 0 || position >= length {
		return nil, v.done(container.OpExtractAt, container.ErrPositionMismatch)
	}

	at := v.head + position
	data := v.storage[at].Take()
	if position < length/2 {
		copy(v.storage[v.head+1:at+1], v.storage[v.head:at])
		v.clearSlot(v.head)
		v.head++
	} else {
		copy(v.storage[at:v.tail-1], v.storage[at+1:v.tail])
		v.tail--
		v.clearSlot(v.tail)
	}
	v.park()
	return data, v.done(container.OpExtractAt, nil)
}

// Resize changes the logical capacity. Surviving elements are copied into a
// new re-centered backing array; when shrinking below the current length
// the elements past the new capacity are released. On allocation failure
// the vector is left unchanged.
func (v *Vector) Resize(capacity int) error {
	return v.done(container.OpResize, v.resize(capacity))
}

func (v *Vector) resize(capacity int) error {
	if err := v.check(); err != nil {
		return err
	}
	if capacity <= 0 {
		return container.ErrSizeZero
	}
	if capacity > container.MaxCapacity {
		return container.ErrNotEnoughCapacity
	}
	if capacity == v.capacity {
		return nil
	}

	keep := min(v.Length(), capacity)
	physical := PhysicalLength(capacity)
	head := InitialHead(physical)
	if keep > 0 {
		head = Center(physical, keep)
	}

	storage := newStorage(physical, v.alloc)
	for i := 0; i < keep; i++ {
		if err := storage[head+i].MemCopy(v.storage[v.head+i].Data()); err != nil {
			releaseRange(storage[head : head+i])
			return err
		}
	}

	releaseRange(v.storage[v.head:v.tail])
	v.storage = storage
	v.head, v.tail = head, head+keep
	v.capacity = capacity
	v.rebuilt(container.OpResize)
	return nil
}

// rebuilt logs a swap to a new backing array
func (v *Vector) rebuilt(op string) {
	v.obs.Logger().Debug("storage rebuilt",
		zap.String("op", op),
		zap.Int("capacity", v.capacity),
		zap.Int("physical", len(v.storage)),
		zap.Int("length", v.Length()))
}

func releaseRange(nodes []memnode.Node) {
	for i := range nodes {
		if !nodes[i].IsEmpty() {
			_ = nodes[i].Reset()
		}
	}
}

// Concat appends copies of every element of src. The capacity grows by the
// capacity of src, and src itself is not modified. Passing the vector itself
// duplicates its content.
func (v *Vector) Concat(src *Vector) error {
	return v.done(container.OpConcat, v.concat(src))
}

func (v *Vector) concat(src *Vector) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := src.check(); err != nil {
		return err
	}
	capacity := v.capacity + src.capacity
	if capacity > container.MaxCapacity {
		return container.ErrNotEnoughCapacity
	}

	copies := make([]memnode.Node, src.Length())
	for i := range copies {
		copies[i] = memnode.NewLite(v.alloc)
		if err := copies[i].MemCopy(src.storage[src.head+i].Data()); err != nil {
			releaseRange(copies[:i])
			return err
		}
	}

	length := v.Length()
	physical := PhysicalLength(capacity)
	head := Center(physical, length+len(copies))
	storage := make([]memnode.Node, physical)
	for i := range storage {
		if i >= head && i < head+length {
			storage[i] = v.storage[v.head+i-head]
			continue
		}
		storage[i] = memnode.NewLite(v.alloc)
	}
	v.storage = storage
	v.head, v.tail = head, head+length

	copy(v.storage[v.tail:], copies)
	v.tail += len(copies)
	v.capacity = capacity
	v.rebuilt(container.OpConcat)
	return nil
}

// Reset releases every element and parks the cursors.
func (v *Vector) Reset() error {
	if err := v.check(); err != nil {
		return v.done(container.OpReset, err)
	}
	releaseRange(v.storage[v.head:v.tail])
	v.tail = v.head
	v.park()
	return v.done(container.OpReset, nil)
}

// SoftReset forgets every element without releasing the buffers, for when
// their ownership has already moved elsewhere.
func (v *Vector) SoftReset() error {
	if err := v.check(); err != nil {
		return v.done(container.OpSoftReset, err)
	}
	for i := v.head; i < v.tail; i++ {
		_ = v.storage[i].SoftReset()
	}
	v.tail = v.head
	v.park()
	return v.done(container.OpSoftReset, nil)
}

// Destroy releases every element and the backing array. Any later call
// except Destroy fails with ErrStorageNull.
func (v *Vector) Destroy() error {
	if v == nil {
		return v.done(container.OpDestroy, container.ErrVectorNull)
	}
	if v.storage != nil {
		releaseRange(v.storage[v.head:v.tail])
	}
	v.storage = nil
	v.head, v.tail = 0, 0
	return v.done(container.OpDestroy, nil)
}

// Traverse calls fn for every element from first to last
func (v *Vector) Traverse(fn func(container.Node)) error {
	if err := v.check(); err != nil {
		return v.done(container.OpTraverse, err)
	}
	if fn == nil {
		return v.done(container.OpTraverse, container.ErrNull)
	}
	for i := v.head; i < v.tail; i++ {
		fn(&v.storage[i])
	}
	return v.done(container.OpTraverse, nil)
}

// Print writes the layout and every element to w
func (v *Vector) Print(w io.Writer) {
	if v == nil || v.storage == nil {
		_, _ = fmt.Fprintln(w, "null")
		return
	}
	_, _ = fmt.Fprintf(w, "[%s %s] head: %d tail: %d length: %d capacity: %d physical: %d\n",
		kind, v.obs.ID, v.head, v.tail, v.Length(), v.capacity, len(v.storage))
	for i := v.head; i < v.tail; i++ {
		_, _ = fmt.Fprintf(w, "  [%d] ", i-v.head)
		v.storage[i].Print(w)
	}
}
