// Package list implements singly and doubly linked lists of memory nodes.
// Nodes live in a per-list arena and link to each other by index, so a list
// never holds pointers between its own cells.
package list

import (
	"io"

	"github.com/FairForge/adtkit/internal/container"
)

const kindList = "list"

var _ container.Sequence = (*List)(nil)

// List is a singly linked list with O(1) inserts at both ends and O(1)
// ExtractFirst.
type List chain

// New creates a singly linked list holding at most capacity elements.
func New(capacity int, opts *container.Options) (*List, error) {
	c, err := newChain(kindList, false, capacity, opts)
	return (*List)(c), err
}

func (l *List) core() *chain {
	if l == nil {
		return orphanChain(kindList)
	}
	return (*chain)(l)
}

// Length returns the number of linked elements
func (l *List) Length() int {
	return l.core().Length()
}

// Capacity returns the maximum number of elements
func (l *List) Capacity() int {
	return l.core().Capacity()
}

// IsEmpty reports whether the list holds no elements
func (l *List) IsEmpty() bool {
	return l.core().IsEmpty()
}

// IsFull reports whether length has reached capacity
func (l *List) IsFull() bool {
	return l.core().IsFull()
}

// First returns the first element by reference
func (l *List) First() ([]byte, error) {
	return l.core().First()
}

// Last returns the last element by reference
func (l *List) Last() ([]byte, error) {
	return l.core().Last()
}

// At returns the element at index by reference
func (l *List) At(index int) ([]byte, error) {
	return l.core().At(index)
}

// InsertFirst links a copy of data in front of the first element
func (l *List) InsertFirst(data []byte) error {
	return l.core().InsertFirst(data)
}

// InsertLast links a copy of data after the last element
func (l *List) InsertLast(data []byte) error {
	return l.core().InsertLast(data)
}

// InsertAt links a copy of data so it ends up at index. Index 0 prepends
// and indices at or past the end append
func (l *List) InsertAt(data []byte, index int) error {
	return l.core().InsertAt(data, index)
}

// ExtractFirst unlinks the first element and hands its buffer to the caller
func (l *List) ExtractFirst() ([]byte, error) {
	return l.core().ExtractFirst()
}

// ExtractLast unlinks the last element. A singly linked list has to walk
// to the predecessor, so this is O(n)
func (l *List) ExtractLast() ([]byte, error) {
	return l.core().ExtractLast()
}

// ExtractAt unlinks the element at index and hands its buffer to the caller
func (l *List) ExtractAt(index int) ([]byte, error) {
	return l.core().ExtractAt(index)
}

// Resize changes the capacity. Shrinking below the current length releases
// the elements past the new capacity
func (l *List) Resize(capacity int) error {
	return l.core().Resize(capacity)
}

// Reset releases every element
func (l *List) Reset() error {
	return l.core().Reset()
}

// SoftReset forgets every element without releasing the buffers
func (l *List) SoftReset() error {
	return l.core().SoftReset()
}

// Destroy releases every element. Any later call except Destroy fails with
// ErrStorageNull
func (l *List) Destroy() error {
	return l.core().Destroy()
}

// Traverse calls fn for every element from first to last
func (l *List) Traverse(fn func(container.Node)) error {
	return l.core().Traverse(fn)
}

// Print writes the list state and every element to w
func (l *List) Print(w io.Writer) {
	l.core().Print(w)
}

// Concat appends copies of every element of src and raises the capacity by
// the capacity of src. src is left unchanged and may be l itself.
func (l *List) Concat(src *List) error {
	return l.core().Concat(src.core())
}
