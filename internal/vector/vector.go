// Package vector implements a fixed-head array of memory nodes. The first
// element always sits at index 0, so inserting or extracting anywhere but
// the end shifts the following elements.
package vector

import (
	"fmt"
	"io"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/memnode"
	"github.com/FairForge/adtkit/internal/memory"
)

const kind = "vector"

var _ container.Sequence = (*Vector)(nil)

// Vector stores up to capacity elements in storage[0:tail].
type Vector struct {
	storage []memnode.Node
	tail    int
	alloc   memory.Allocator
	obs     container.Observer
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

	v := &Vector{
		storage: make([]memnode.Node, capacity),
		alloc:   o.Allocator,
		obs:     obs,
	}
	for i := range v.storage {
		v.storage[i] = memnode.NewLite(o.Allocator)
	}
	return v, obs.Done(container.OpCreate, nil)
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

// Length returns the number of stored elements
func (v *Vector) Length() int {
	if v == nil {
		return 0
	}
	return v.tail
}

// Capacity returns the maximum number of elements
func (v *Vector) Capacity() int {
	if v == nil {
		return 0
	}
	return len(v.storage)
}

// IsEmpty reports whether the vector holds no elements
func (v *Vector) IsEmpty() bool {
	return v.Length() == 0
}

// IsFull reports whether every slot is in use
func (v *Vector) IsFull() bool {
	if v == nil || v.storage == nil {
		return false
	}
	return v.tail >= len(v.storage)
}

// First returns the first element by reference
func (v *Vector) First() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpFirst, err)
	}
	if v.tail == 0 {
		return nil, v.done(container.OpFirst, container.ErrVectorEmpty)
	}
	return v.storage[0].Data(), nil
}

// Last returns the last element by reference
func (v *Vector) Last() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpLast, err)
	}
	if v.tail == 0 {
		return nil, v.done(container.OpLast, container.ErrVectorEmpty)
	}
	return v.storage[v.tail-1].Data(), nil
}

// At returns the element at position by reference
func (v *Vector) At(position int) ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(container.OpAt, err)
	}
	if position < 0 || position >= v.tail {
		return nil, v.done(container.OpAt, container.ErrPositionMismatch)
	}
	return v.storage[position].Data(), nil
}

// prepare validates an insert and returns the node holding a copy of data.
func (v *Vector) prepare(data []byte) (memnode.Node, error) {
	n := memnode.NewLite(v.alloc)
	if err := v.check(); err != nil {
		return n, err
	}
	if err := container.ValidatePayload(data); err != nil {
		return n, err
	}
	if v.IsFull() {
		return n, container.ErrVectorFull
	}
	err := n.MemCopy(data)
	return n, err
}

// InsertLast stores a copy of data after the last element
func (v *Vector) InsertLast(data []byte) error {
	node, err := v.prepare(data)
	if err != nil {
		return v.done(container.OpInsertLast, err)
	}
	v.storage[v.tail] = node
	v.tail++
	return v.done(container.OpInsertLast, nil)
}

// InsertFirst stores a copy of data at index 0, shifting every element right.
func (v *Vector) InsertFirst(data []byte) error {
	node, err := v.prepare(data)
	if err != nil {
		return v.done(container.OpInsertFirst, err)
	}
	v.insert(node, 0)
	return v.done(container.OpInsertFirst, nil)
}

// InsertAt stores a copy of data at position. Positions at or past the end
// append.
func (v *Vector) InsertAt(data []byte, position int) error {
	if position < 0 && v.check() == nil {
		return v.done(container.OpInsertAt, container.ErrPositionMismatch)
	}
	node, err := v.prepare(data)
	if err != nil {
		return v.done(container.OpInsertAt, err)
	}
	v.insert(node, min(position, v.tail))
	return v.done(container.OpInsertAt, nil)
}

func (v *Vector) insert(node memnode.Node, at int) {
	copy(v.storage[at+1:v.tail+1], v.storage[at:v.tail])
	v.storage[at] = node
	v.tail++
}

// ExtractFirst removes element 0 and hands its buffer to the caller.
func (v *Vector) ExtractFirst() ([]byte, error) {
	return v.extract(container.OpExtractFirst, 0)
}

// ExtractLast removes the last element and hands its buffer to the caller.
func (v *Vector) ExtractLast() ([]byte, error) {
	return v.extract(container.OpExtractLast, v.Length()-1)
}

// ExtractAt removes the element at position and hands its buffer to the
// caller.
func (v *Vector) ExtractAt(position int) ([]byte, error) {
	return v.extract(container.OpExtractAt, position)
}

func (v *Vector) extract(op string, position int) ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, v.done(op, err)
	}
	if v.tail == 0 {
		return nil, v.done(op, container.ErrVectorEmpty)
	}
	if position < 0 || position >= v.tail {
		return nil, v.done(op, container.ErrPositionMismatch)
	}

	data := v.storage[position].Take()
	copy(v.storage[position:v.tail-1], v.storage[position+1:v.tail])
	v.tail--
	v.storage[v.tail] = memnode.NewLite(v.alloc)
	return data, v.done(op, nil)
}

// Resize changes the capacity, copying surviving elements into new storage.
// Elements past the new capacity are released. On allocation failure the
// vector is left unchanged.
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
	if capacity == len(v.storage) {
		return nil
	}

	keep := min(v.tail, capacity)
	storage := make([]memnode.Node, capacity)
	for i := range storage {
		storage[i] = memnode.NewLite(v.alloc)
	}
	for i := 0; i < keep; i++ {
		if err := storage[i].MemCopy(v.storage[i].Data()); err != nil {
			release(storage[:i])
			return err
		}
	}

	release(v.storage[:v.tail])
	v.storage = storage
	v.tail = keep
	return nil
}

func release(nodes []memnode.Node) {
	for i := range nodes {
		if !nodes[i].IsEmpty() {
			_ = nodes[i].Reset()
		}
	}
}

// Concat appends copies of every element of src and raises the capacity by
// the capacity of src. src is not modified; passing v itself is allowed.
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
	capacity := len(v.storage) + len(src.storage)
	if capacity > container.MaxCapacity {
		return container.ErrNotEnoughCapacity
	}

	storage := make([]memnode.Node, capacity)
	copy(storage, v.storage[:v.tail])
	for i := v.tail; i < capacity; i++ {
		storage[i] = memnode.NewLite(v.alloc)
	}
	for i := 0; i < src.tail; i++ {
		if err := storage[v.tail+i].MemCopy(src.storage[i].Data()); err != nil {
			release(storage[v.tail : v.tail+i])
			return err
		}
	}

	v.tail += src.tail
	v.storage = storage
	return nil
}

// Reset releases every element
func (v *Vector) Reset() error {
	if err := v.check(); err != nil {
		return v.done(container.OpReset, err)
	}
	release(v.storage[:v.tail])
	v.tail = 0
	return v.done(container.OpReset, nil)
}

// SoftReset forgets every element without releasing the buffers
func (v *Vector) SoftReset() error {
	if err := v.check(); err != nil {
		return v.done(container.OpSoftReset, err)
	}
	for i := 0; i < v.tail; i++ {
		_ = v.storage[i].SoftReset()
	}
	v.tail = 0
	return v.done(container.OpSoftReset, nil)
}

// Destroy releases every element and the storage. Any later call except
// Destroy fails with ErrStorageNull.
func (v *Vector) Destroy() error {
	if v == nil {
		return v.done(container.OpDestroy, container.ErrVectorNull)
	}
	if v.storage != nil {
		release(v.storage[:v.tail])
	}
	v.storage = nil
	v.tail = 0
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
	for i := 0; i < v.tail; i++ {
		fn(&v.storage[i])
	}
	return v.done(container.OpTraverse, nil)
}

// Print writes the vector state and every element to w
func (v *Vector) Print(w io.Writer) {
	if v == nil || v.storage == nil {
		_, _ = fmt.Fprintln(w, "null")
		return
	}
	_, _ = fmt.Fprintf(w, "[%s %s] length: %d capacity: %d\n",
		kind, v.obs.ID, v.tail, len(v.storage))
	for i := 0; i < v.tail; i++ {
		_, _ = fmt.Fprintf(w, "  [%d] ", i)
		v.storage[i].Print(w)
	}
}
