package list

import (
	"io"

	"github.com/FairForge/adtkit/internal/container"
)

const kindDLList = "dllist"

var _ container.Sequence = (*DLList)(nil)

// DLList is a doubly linked list. Positional access walks from whichever
// end is closer to the index.
type DLList chain

// NewDoubly creates a doubly linked list holding at most capacity elements.
func NewDoubly(capacity int, opts *container.Options) (*DLList, error) {
	c, err := newChain(kindDLList, true, capacity, opts)
	return (*DLList)(c), err
}

func (d *DLList) core() *chain {
	if d == nil {
		return orphanChain(kindDLList)
	}
	return (*chain)(d)
}

// Length returns the number of linked elements
func (d *DLList) Length() int {
	return d.core().Length()
}

// Capacity returns the maximum number of elements
func (d *DLList) Capacity() int {
	return d.core().Capacity()
}

// IsEmpty reports whether the list holds no elements
func (d *DLList) IsEmpty() bool {
	return d.core().IsEmpty()
}

// IsFull reports whether length has reached capacity
func (d *DLList) IsFull() bool {
	return d.core().IsFull()
}

// First returns the first element by reference
func (d *DLList) First() ([]byte, error) {
	return d.core().First()
}

// Last returns the last element by reference
func (d *DLList) Last() ([]byte, error) {
	return d.core().Last()
}

// At returns the element at index by reference
func (d *DLList) At(index int) ([]byte, error) {
	return d.core().At(index)
}

// InsertFirst links a copy of data in front of the first element
func (d *DLList) InsertFirst(data []byte) error {
	return d.core().InsertFirst(data)
}

// InsertLast links a copy of data after the last element
func (d *DLList) InsertLast(data []byte) error {
	return d.core().InsertLast(data)
}

// InsertAt links a copy of data so it ends up at index. Index 0 prepends
// and indices at or past the end append
func (d *DLList) InsertAt(data []byte, index int) error {
	return d.core().InsertAt(data, index)
}

// ExtractFirst unlinks the first element and hands its buffer to the caller
func (d *DLList) ExtractFirst() ([]byte, error) {
	return d.core().ExtractFirst()
}

// ExtractLast unlinks the last element in O(1)
func (d *DLList) ExtractLast() ([]byte, error) {
	return d.core().ExtractLast()
}

// ExtractAt unlinks the element at index and hands its buffer to the caller
func (d *DLList) ExtractAt(index int) ([]byte, error) {
	return d.core().ExtractAt(index)
}

// Resize changes the capacity. Shrinking below the current length releases
// the elements past the new capacity
func (d *DLList) Resize(capacity int) error {
	return d.core().Resize(capacity)
}

// Reset releases every element
func (d *DLList) Reset() error {
	return d.core().Reset()
}

// SoftReset forgets every element without releasing the buffers
func (d *DLList) SoftReset() error {
	return d.core().SoftReset()
}

// Destroy releases every element. Any later call except Destroy fails with
// ErrStorageNull
func (d *DLList) Destroy() error {
	return d.core().Destroy()
}

// Traverse calls fn for every element from first to last
func (d *DLList) Traverse(fn func(container.Node)) error {
	return d.core().Traverse(fn)
}

// Print writes the list state and every element to w
func (d *DLList) Print(w io.Writer) {
	d.core().Print(w)
}

// Concat appends copies of every element of src and raises the capacity by
// the capacity of src. src is left unchanged and may be d itself.
func (d *DLList) Concat(src *DLList) error {
	return d.core().Concat(src.core())
}
