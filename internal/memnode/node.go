// Package memnode implements the owned byte buffer every container stores
// its elements in.
package memnode

import (
	"fmt"
	"io"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/memory"
)

// MaxSize is the largest payload a node can hold.
const MaxSize = container.MaxPayload

var _ container.Node = (*Node)(nil)

// Node owns one byte buffer. size == 0 exactly when data == nil.
type Node struct {
	data  []byte
	size  uint16
	alloc memory.Allocator
}

// NewLite returns an empty node that allocates through alloc.
func NewLite(alloc memory.Allocator) Node {
	return Node{alloc: memory.OrHeap(alloc)}
}

// New returns a pointer to an empty node.
func New(alloc memory.Allocator) *Node {
	n := NewLite(alloc)
	return &n
}

// Data returns the stored buffer by reference
func (n *Node) Data() []byte {
	if n == nil {
		return nil
	}
	return n.data
}

// Size returns the number of stored bytes
func (n *Node) Size() uint16 {
	if n == nil {
		return 0
	}
	return n.size
}

// IsEmpty reports whether the node holds no buffer
func (n *Node) IsEmpty() bool {
	return n == nil || n.data == nil
}

func (n *Node) allocator() memory.Allocator {
	if n.alloc == nil {
		n.alloc = memory.Heap
	}
	return n.alloc
}

// SetData moves src into the node without copying. The node owns src from
// now on and the caller must not reuse it. Any previous buffer is forgotten,
// not released.
func (n *Node) SetData(src []byte) error {
	if n == nil {
		return container.ErrNodeNull
	}
	if src == nil {
		return container.ErrSrcNull
	}
	if len(src) == 0 {
		return container.ErrBytesZero
	}
	if len(src) > MaxSize {
		return container.ErrSizeMismatch
	}
	n.data = src
	n.size = uint16(len(src))
	return nil
}

// MemCopy replaces the content with a fresh copy of src. The old buffer is
// released only after the new one has been allocated.
func (n *Node) MemCopy(src []byte) error {
	if n == nil {
		return container.ErrNodeNull
	}
	if src == nil {
		return container.ErrNull
	}
	if len(src) == 0 {
		return container.ErrSizeZero
	}
	if len(src) > MaxSize {
		return container.ErrSizeMismatch
	}

	buf := n.allocator().Allocate(len(src))
	if buf == nil {
		return container.ErrMemory
	}
	copy(buf, src)

	if n.data != nil {
		n.alloc.Free(n.data)
	}
	n.data = buf
	n.size = uint16(len(buf))
	return nil
}

// MemConcat appends src to the stored bytes in a newly allocated buffer.
func (n *Node) MemConcat(src []byte) error {
	if n == nil {
		return container.ErrNodeNull
	}
	if n.data == nil {
		return container.ErrDataNull
	}
	if src == nil {
		return container.ErrSrcNull
	}
	if len(src) == 0 {
		return container.ErrBytesZero
	}
	total := int(n.size) + len(src)
	if total > MaxSize {
		return container.ErrSizeMismatch
	}

	buf := n.allocator().Allocate(total)
	if buf == nil {
		return container.ErrMemory
	}
	copy(buf, n.data)
	copy(buf[n.size:], src)

	n.alloc.Free(n.data)
	n.data = buf
	n.size = uint16(total)
	return nil
}

// MemMask ANDs every stored byte with mask
func (n *Node) MemMask(mask byte) error {
	if n == nil {
		return container.ErrNodeNull
	}
	if n.data == nil {
		return container.ErrDataNull
	}
	for i := range n.data {
		n.data[i] &= mask
	}
	return nil
}

// MemSet overwrites every stored byte with value
func (n *Node) MemSet(value byte) error {
	if n == nil {
		return container.ErrNodeNull
	}
	if n.data == nil {
		return container.ErrDataNull
	}
	if n.size == 0 {
		return container.ErrSizeZero
	}
	for i := range n.data {
		n.data[i] = value
	}
	return nil
}

// Reset releases the buffer back to the allocator.
func (n *Node) Reset() error {
	if n == nil {
		return container.ErrNodeNull
	}
	if n.data == nil {
		return container.ErrDataNull
	}
	n.allocator().Free(n.data)
	n.data = nil
	n.size = 0
	return nil
}

// SoftReset forgets the buffer without releasing it. Use it once ownership
// of the buffer has moved elsewhere.
func (n *Node) SoftReset() error {
	if n == nil {
		return container.ErrNodeNull
	}
	n.data = nil
	n.size = 0
	return nil
}

// Take soft-resets the node and returns the buffer it held.
func (n *Node) Take() []byte {
	if n == nil {
		return nil
	}
	data := n.data
	n.data = nil
	n.size = 0
	return data
}

// Print writes the node size and content to w
func (n *Node) Print(w io.Writer) {
	if n == nil {
		_, _ = fmt.Fprintln(w, "null")
		return
	}
	_, _ = fmt.Fprintf(w, "[node] size: %d\n", n.size)
	if n.data == nil {
		_, _ = fmt.Fprintln(w, "\t[node] data: null")
		return
	}
	_, _ = fmt.Fprintf(w, "\t[node] data: %q\n", n.data)
}
