package vector

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/memory"
	"github.com/FairForge/adtkit/internal/metrics"
)

func bs(items ...string) [][]byte {
	out := make([][]byte, len(items))
	for i, s := range items {
		out[i] = []byte(s)
	}
	return out
}

func newVector(t *testing.T, capacity int, items ...string) *Vector {
	t.Helper()
	v, err := New(capacity, nil)
	require.NoError(t, err)
	require.NoError(t, container.Fill(v, bs(items...)...))
	return v
}

func contents(t *testing.T, v *Vector) [][]byte {
	t.Helper()
	out, err := container.Snapshot(v)
	require.NoError(t, err)
	return out
}

func TestVector_New(t *testing.T) {
	v, err := New(3, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Capacity())
	assert.True(t, v.IsEmpty())

	_, err = New(0, nil)
	assert.ErrorIs(t, err, container.ErrSizeZero)

	_, err = New(container.MaxCapacity+1, nil)
	assert.ErrorIs(t, err, container.ErrNotEnoughCapacity)
}

func TestVector_Insert(t *testing.T) {
	t.Run("first shifts existing elements", func(t *testing.T) {
		// Arrange
		v := newVector(t, 4, "A", "B")

		// Act
		err := v.InsertFirst([]byte("Z"))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, bs("Z", "A", "B"), contents(t, v))
		assert.False(t, v.IsFull())
	})

	t.Run("at position", func(t *testing.T) {
		v := newVector(t, 5, "a", "c")

		require.NoError(t, v.InsertAt([]byte("b"), 1))
		require.NoError(t, v.InsertAt([]byte("d"), 42))

		assert.Equal(t, bs("a", "b", "c", "d"), contents(t, v))
		assert.ErrorIs(t, v.InsertAt([]byte("x"), -1), container.ErrPositionMismatch)
	})

	t.Run("full", func(t *testing.T) {
		v := newVector(t, 2, "a", "b")

		assert.True(t, v.IsFull())
		assert.ErrorIs(t, v.InsertLast([]byte("c")), container.ErrVectorFull)
		assert.ErrorIs(t, v.InsertFirst([]byte("c")), container.ErrVectorFull)
		assert.Equal(t, container.CodeVectorFull, container.CodeOf(v.InsertAt([]byte("c"), 0)))
	})

	t.Run("bad payload", func(t *testing.T) {
		v := newVector(t, 2)

		assert.ErrorIs(t, v.InsertLast(nil), container.ErrSrcNull)
		assert.ErrorIs(t, v.InsertFirst([]byte{}), container.ErrBytesZero)
	})

	t.Run("copies payload", func(t *testing.T) {
		v := newVector(t, 2)
		src := []byte("abc")

		require.NoError(t, v.InsertLast(src))
		src[1] = 'x'

		got, err := v.At(0)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})
}

func TestVector_Extract(t *testing.T) {
	t.Run("middle", func(t *testing.T) {
		v := newVector(t, 4, "1", "2", "3")

		data, err := v.ExtractAt(1)

		require.NoError(t, err)
		assert.Equal(t, []byte("2"), data)
		assert.Equal(t, bs("1", "3"), contents(t, v))
	})

	t.Run("ends", func(t *testing.T) {
		v := newVector(t, 4, "1", "2", "3")

		first, err := v.ExtractFirst()
		require.NoError(t, err)
		last, err := v.ExtractLast()
		require.NoError(t, err)

		assert.Equal(t, []byte("1"), first)
		assert.Equal(t, []byte("3"), last)
		assert.Equal(t, bs("2"), contents(t, v))
	})

	t.Run("empty", func(t *testing.T) {
		v := newVector(t, 1)

		_, err := v.ExtractFirst()
		assert.ErrorIs(t, err, container.ErrVectorEmpty)
		_, err = v.ExtractLast()
		assert.ErrorIs(t, err, container.ErrVectorEmpty)
	})

	t.Run("out of range", func(t *testing.T) {
		v := newVector(t, 2, "a")

		_, err := v.ExtractAt(5)
		assert.ErrorIs(t, err, container.ErrPositionMismatch)
		_, err = v.At(1)
		assert.ErrorIs(t, err, container.ErrPositionMismatch)
	})

	t.Run("round trip restores content", func(t *testing.T) {
		v := newVector(t, 4, "a", "b")

		require.NoError(t, v.InsertFirst([]byte("x")))
		_, err := v.ExtractFirst()
		require.NoError(t, err)

		assert.Equal(t, bs("a", "b"), contents(t, v))
	})
}

func TestVector_Resize(t *testing.T) {
	t.Run("grow", func(t *testing.T) {
		v := newVector(t, 2, "a", "b")

		require.NoError(t, v.Resize(5))

		assert.Equal(t, 5, v.Capacity())
		assert.False(t, v.IsFull())
		assert.Equal(t, bs("a", "b"), contents(t, v))
	})

	t.Run("shrink releases the tail", func(t *testing.T) {
		budget := memory.NewBudget(nil, 32)
		v, err := New(3, &container.Options{Allocator: budget})
		require.NoError(t, err)
		require.NoError(t, container.Fill(v, bs("aa", "bb", "cc")...))

		require.NoError(t, v.Resize(1))

		assert.Equal(t, bs("aa"), contents(t, v))
		assert.Equal(t, int64(2), budget.Stats().BytesInUse)
	})

	t.Run("allocation failure is atomic", func(t *testing.T) {
		budget := memory.NewBudget(nil, 5)
		v, err := New(2, &container.Options{Allocator: budget})
		require.NoError(t, err)
		require.NoError(t, container.Fill(v, bs("aa", "bb")...))

		assert.ErrorIs(t, v.Resize(4), container.ErrMemory)
		assert.Equal(t, 2, v.Capacity())
		assert.Equal(t, bs("aa", "bb"), contents(t, v))
		assert.Equal(t, int64(4), budget.Stats().BytesInUse)
	})
}

func TestVector_Concat(t *testing.T) {
	t.Run("appends copies and adds capacity", func(t *testing.T) {
		a := newVector(t, 2, "1", "2")
		b := newVector(t, 3, "3", "4")

		require.NoError(t, a.Concat(b))

		assert.Equal(t, bs("1", "2", "3", "4"), contents(t, a))
		assert.Equal(t, 5, a.Capacity())
		assert.Equal(t, bs("3", "4"), contents(t, b))

		require.NoError(t, b.Concat(b))
		assert.Equal(t, bs("3", "4", "3", "4"), contents(t, b))
		assert.Equal(t, 6, b.Capacity())
	})

	t.Run("allocation failure leaves vector unchanged", func(t *testing.T) {
		// Arrange
		budget := memory.NewBudget(nil, 2)
		v, err := New(4, &container.Options{Allocator: budget})
		require.NoError(t, err)
		require.NoError(t, container.Fill(v, bs("a", "b")...))
		other := newVector(t, 2, "c", "d")

		// Act & Assert
		assert.ErrorIs(t, v.Concat(v), container.ErrMemory)
		assert.ErrorIs(t, v.Concat(other), container.ErrMemory)

		assert.Equal(t, 4, v.Capacity())
		assert.Equal(t, 2, v.Length())
		assert.Equal(t, bs("a", "b"), contents(t, v))
		assert.Equal(t, int64(2), budget.Stats().BytesInUse)
		assert.Equal(t, bs("c", "d"), contents(t, other))
	})

	t.Run("insert failure leaves vector unchanged", func(t *testing.T) {
		budget := memory.NewBudget(nil, 2)
		v, err := New(4, &container.Options{Allocator: budget})
		require.NoError(t, err)
		require.NoError(t, container.Fill(v, bs("a", "b")...))

		assert.ErrorIs(t, v.InsertFirst([]byte("x")), container.ErrMemory)
		assert.ErrorIs(t, v.InsertLast([]byte("x")), container.ErrMemory)
		assert.ErrorIs(t, v.InsertAt([]byte("x"), 1), container.ErrMemory)

		assert.Equal(t, bs("a", "b"), contents(t, v))
		assert.False(t, v.IsFull())
	})
}

func TestVector_Lifecycle(t *testing.T) {
	t.Run("reset and soft reset", func(t *testing.T) {
		budget := memory.NewBudget(nil, 32)
		v, err := New(3, &container.Options{Allocator: budget})
		require.NoError(t, err)

		require.NoError(t, container.Fill(v, bs("ab", "cd")...))
		require.NoError(t, v.SoftReset())
		assert.True(t, v.IsEmpty())
		assert.Equal(t, int64(4), budget.Stats().BytesInUse)

		require.NoError(t, container.Fill(v, bs("ef")...))
		require.NoError(t, v.Reset())
		assert.Equal(t, int64(4), budget.Stats().BytesInUse)
	})

	t.Run("destroy", func(t *testing.T) {
		v := newVector(t, 2, "a")

		require.NoError(t, v.Destroy())

		assert.ErrorIs(t, v.InsertFirst([]byte("b")), container.ErrStorageNull)
		_, err := v.ExtractFirst()
		assert.ErrorIs(t, err, container.ErrStorageNull)
		assert.NoError(t, v.Destroy())
	})

	t.Run("nil vector", func(t *testing.T) {
		var v *Vector

		assert.True(t, v.IsEmpty())
		assert.False(t, v.IsFull())
		assert.ErrorIs(t, v.InsertLast([]byte("a")), container.ErrVectorNull)
		assert.ErrorIs(t, v.Reset(), container.ErrVectorNull)
	})
}

func TestVector_Metrics(t *testing.T) {
	collector := metrics.NewCollector()
	v, err := New(1, &container.Options{Metrics: collector})
	require.NoError(t, err)

	require.NoError(t, v.InsertLast([]byte("a")))
	_ = v.InsertLast([]byte("b"))

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Operations.WithLabelValues(kind, container.OpInsertLast, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Operations.WithLabelValues(kind, container.OpInsertLast, "vector_full")))
}

func TestVector_TraverseAndPrint(t *testing.T) {
	v := newVector(t, 3, "ab", "cd")

	var sizes []uint16
	require.NoError(t, v.Traverse(func(n container.Node) {
		sizes = append(sizes, n.Size())
	}))
	assert.Equal(t, []uint16{2, 2}, sizes)

	var buf bytes.Buffer
	v.Print(&buf)
	assert.Contains(t, buf.String(), "length: 2 capacity: 3")
	assert.Contains(t, buf.String(), `"cd"`)
}
