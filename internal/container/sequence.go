// internal/container/sequence.go
package container

import "io"

// Node is the view of a stored element handed to Traverse callbacks.
type Node interface {
	Data() []byte
	Size() uint16
	MemSet(value byte) error
	MemMask(mask byte) error
	MemCopy(src []byte) error
	MemConcat(src []byte) error
}

// Sequence is the behavior shared by every positional container. Positions
// are logical: 0 is always the first element regardless of where it sits in
// the backing storage.
type Sequence interface {
	Length() int
	Capacity() int
	IsEmpty() bool
	IsFull() bool

	First() ([]byte, error)
	Last() ([]byte, error)
	At(position int) ([]byte, error)

	InsertFirst(data []byte) error
	InsertLast(data []byte) error
	InsertAt(data []byte, position int) error

	ExtractFirst() ([]byte, error)
	ExtractLast() ([]byte, error)
	ExtractAt(position int) ([]byte, error)

	Resize(capacity int) error
	Reset() error
	SoftReset() error
	Destroy() error

	Traverse(fn func(Node)) error
	Print(w io.Writer)
}

// Fill appends every payload to s, stopping at the first failure.
func Fill[S Sequence](s S, payloads ...[]byte) error {
	for _, p := range payloads {
		if err := s.InsertLast(p); err != nil {
			return err
		}
	}
	return nil
}

// Drain extracts every element of s from the front.
func Drain[S Sequence](s S) ([][]byte, error) {
	out := make([][]byte, 0, s.Length())
	for !s.IsEmpty() {
		data, err := s.ExtractFirst()
		if err != nil {
			return out, err
		}
		out = append(out, data)
	}
	return out, nil
}

// Snapshot copies the logical content of s without modifying it.
func Snapshot[S Sequence](s S) ([][]byte, error) {
	out := make([][]byte, 0, s.Length())
	err := s.Traverse(func(n Node) {
		b := make([]byte, len(n.Data()))
		copy(b, n.Data())
		out = append(out, b)
	})
	return out, err
}
