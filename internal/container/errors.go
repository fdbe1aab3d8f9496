// internal/container/errors.go
package container

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNull              = errors.New("null reference")
	ErrMemory            = errors.New("not enough memory")
	ErrNodeNull          = errors.New("node is nil")
	ErrSrcNull           = errors.New("source is nil")
	ErrBytesZero         = errors.New("zero bytes")
	ErrDataNull          = errors.New("node holds no data")
	ErrSizeZero          = errors.New("size is zero")
	ErrSizeMismatch      = errors.New("size out of range")
	ErrVectorNull        = errors.New("vector is nil")
	ErrStorageNull       = errors.New("storage released")
	ErrVectorFull        = errors.New("vector full")
	ErrVectorEmpty       = errors.New("vector empty")
	ErrPositionMismatch  = errors.New("position out of range")
	ErrNotEnoughCapacity = errors.New("not enough capacity")
	ErrListNull          = errors.New("list is nil")
	ErrFirstNull         = errors.New("list head missing")
	ErrInvalidIndex      = errors.New("invalid index")
	ErrListEmpty         = errors.New("list empty")
	ErrStackNull         = errors.New("stack is nil")
	ErrQueueNull         = errors.New("queue is nil")
)

// Code is the numeric error code of a failed operation. Zero means success.
type Code int16

const (
	CodeOk               Code = 0
	CodeNull             Code = -1
	CodeMemory           Code = -2
	CodeNodeNull         Code = -10
	CodeSrcNull          Code = -11
	CodeBytesZero        Code = -12
	CodeDataNull         Code = -13
	CodeSizeZero         Code = -14
	CodeSizeMismatch     Code = -15
	CodeVectorNull       Code = -20
	CodeStorageNull      Code = -21
	CodeVectorFull       Code = -22
	CodeVectorEmpty      Code = -23
	CodePositionMismatch Code = -24
	CodeNotEnoughCap     Code = -25
	CodeListNull         Code = -30
	CodeFirstNull        Code = -31
	CodeInvalidIndex     Code = -32
	CodeListEmpty        Code = -33
	CodeStackNull        Code = -40
	CodeQueueNull        Code = -41
)

var codes = []struct {
	err  error
	code Code
	name string
}{
	{ErrNull, CodeNull, "null"},
	{ErrMemory, CodeMemory, "memory"},
	{ErrNodeNull, CodeNodeNull, "node_null"},
	{ErrSrcNull, CodeSrcNull, "src_null"},
	{ErrBytesZero, CodeBytesZero, "bytes_zero"},
	{ErrDataNull, CodeDataNull, "data_null"},
	{ErrSizeZero, CodeSizeZero, "size_zero"},
	{ErrSizeMismatch, CodeSizeMismatch, "size_mismatch"},
	{ErrVectorNull, CodeVectorNull, "vector_null"},
	{ErrStorageNull, CodeStorageNull, "storage_null"},
	{ErrVectorFull, CodeVectorFull, "vector_full"},
	{ErrVectorEmpty, CodeVectorEmpty, "vector_empty"},
	{ErrPositionMismatch, CodePositionMismatch, "position_mismatch"},
	{ErrNotEnoughCapacity, CodeNotEnoughCap, "not_enough_capacity"},
	{ErrListNull, CodeListNull, "list_null"},
	{ErrFirstNull, CodeFirstNull, "first_null"},
	{ErrInvalidIndex, CodeInvalidIndex, "invalid_index"},
	{ErrListEmpty, CodeListEmpty, "list_empty"},
	{ErrStackNull, CodeStackNull, "stack_null"},
	{ErrQueueNull, CodeQueueNull, "queue_null"},
}

// CodeOf maps err to its code. Errors outside the taxonomy map to CodeNull.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOk
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeNull
}

func (c Code) String() string {
	if c == CodeOk {
		return "ok"
	}
	for _, e := range codes {
		if e.code == c {
			return e.name
		}
	}
	return fmt.Sprintf("code(%d)", int16(c))
}

// OpError records the container and operation that failed.
type OpError struct {
	Kind string
	Op   string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// WrapError attaches kind and op to err. A nil err stays nil.
func WrapError(kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Kind: kind, Op: op, Err: err}
}
