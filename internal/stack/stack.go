// Package stack provides a LIFO adapter over the fixed-head vector. The top
// of the stack is the last element of the vector, so push and pop never
// shift the elements below.
package stack

import (
	"io"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/vector"
)

const kind = "stack"

// Stack is a bounded LIFO of byte payloads.
type Stack struct {
	storage *vector.Vector
}

// New creates a stack holding at most capacity elements.
func New(capacity int, opts *container.Options) (*Stack, error) {
	v, err := vector.New(capacity, opts)
	if err != nil {
		return nil, err
	}
	return &Stack{storage: v}, nil
}

func nullErr(op string) error {
	return container.WrapError(kind, op, container.ErrStackNull)
}

// Push stores a copy of data on top.
func (s *Stack) Push(data []byte) error {
	if s == nil {
		return nullErr("push")
	}
	return s.storage.InsertLast(data)
}

// Pop removes the top element and hands its buffer to the caller.
func (s *Stack) Pop() ([]byte, error) {
	if s == nil {
		return nil, nullErr("pop")
	}
	return s.storage.ExtractLast()
}

// Top returns the top element by reference.
func (s *Stack) Top() ([]byte, error) {
	if s == nil {
		return nil, nullErr("top")
	}
	return s.storage.Last()
}

func (s *Stack) Length() int {
	if s == nil {
		return 0
	}
	return s.storage.Length()
}

func (s *Stack) Capacity() int {
	if s == nil {
		return 0
	}
	return s.storage.Capacity()
}

func (s *Stack) IsEmpty() bool {
	return s.Length() == 0
}

func (s *Stack) IsFull() bool {
	if s == nil {
		return false
	}
	return s.storage.IsFull()
}

// Resize changes the capacity. Shrinking drops the elements nearest the top.
func (s *Stack) Resize(capacity int) error {
	if s == nil {
		return nullErr(container.OpResize)
	}
	return s.storage.Resize(capacity)
}

func (s *Stack) Reset() error {
	if s == nil {
		return nullErr(container.OpReset)
	}
	return s.storage.Reset()
}

// Concat pushes copies of the elements of src, bottom first, and raises the
// capacity by the capacity of src.
func (s *Stack) Concat(src *Stack) error {
	if s == nil || src == nil {
		return nullErr(container.OpConcat)
	}
	return s.storage.Concat(src.storage)
}

// Destroy releases every element and the storage.
func (s *Stack) Destroy() error {
	if s == nil {
		return nullErr(container.OpDestroy)
	}
	return s.storage.Destroy()
}

// Print writes the stack bottom to top
func (s *Stack) Print(w io.Writer) {
	var v *vector.Vector
	if s != nil {
		v = s.storage
	}
	v.Print(w)
}
