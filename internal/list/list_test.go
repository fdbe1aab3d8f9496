package list

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/memory"
)

type variant struct {
	name string
	make func(t *testing.T, capacity int, opts *container.Options) (container.Sequence, *chain)
}

var variants = []variant{
	{
		name: "singly",
		make: func(t *testing.T, capacity int, opts *container.Options) (container.Sequence, *chain) {
			l, err := New(capacity, opts)
			require.NoError(t, err)
			return l, l.core()
		},
	},
	{
		name: "doubly",
		make: func(t *testing.T, capacity int, opts *container.Options) (container.Sequence, *chain) {
			d, err := NewDoubly(capacity, opts)
			require.NoError(t, err)
			return d, d.core()
		},
	},
}

func bs(items ...string) [][]byte {
	out := make([][]byte, len(items))
	for i, s := range items {
		out[i] = []byte(s)
	}
	return out
}

func contents(t *testing.T, s container.Sequence) [][]byte {
	t.Helper()
	out, err := container.Snapshot(s)
	require.NoError(t, err)
	return out
}

// checkChain verifies that length matches the reachable cells in both
// directions and that no cell leaked out of the arena.
func checkChain(t *testing.T, c *chain) {
	t.Helper()

	count, last := 0, none
	for i := c.head; i != none; i = c.cells.get(i).next {
		count++
		last = i
		require.LessOrEqual(t, count, c.length, "forward walk longer than length")
	}
	assert.Equal(t, c.length, count)
	assert.Equal(t, c.tail, last)

	if c.doubly {
		count, first := 0, none
		for i := c.tail; i != none; i = c.cells.get(i).prev {
			count++
			first = i
			require.LessOrEqual(t, count, c.length, "backward walk longer than length")
		}
		assert.Equal(t, c.length, count)
		assert.Equal(t, c.head, first)
	}

	assert.Equal(t, c.length, c.cells.inUse())
	assert.Equal(t, c.length == c.capacity, c.IsFull())
}

func TestList_New(t *testing.T) {
	l, err := New(3, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Capacity())
	assert.True(t, l.IsEmpty())

	_, err = New(0, nil)
	assert.ErrorIs(t, err, container.ErrSizeZero)
	_, err = NewDoubly(container.MaxCapacity+1, nil)
	assert.ErrorIs(t, err, container.ErrNotEnoughCapacity)
}

func TestList_Insert(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			t.Run("both ends", func(t *testing.T) {
				// Arrange
				s, c := v.make(t, 4, nil)

				// Act
				require.NoError(t, s.InsertLast([]byte("A")))
				require.NoError(t, s.InsertLast([]byte("B")))
				require.NoError(t, s.InsertFirst([]byte("Z")))

				// Assert
				assert.Equal(t, bs("Z", "A", "B"), contents(t, s))
				assert.False(t, s.IsFull())
				checkChain(t, c)
			})

			t.Run("at index", func(t *testing.T) {
				s, c := v.make(t, 8, nil)
				require.NoError(t, container.Fill(s, bs("a", "c", "e")...))

				require.NoError(t, s.InsertAt([]byte("b"), 1))
				require.NoError(t, s.InsertAt([]byte("d"), 3))
				require.NoError(t, s.InsertAt([]byte("f"), 99))
				require.NoError(t, s.InsertAt([]byte("_"), 0))

				assert.Equal(t, bs("_", "a", "b", "c", "d", "e", "f"), contents(t, s))
				assert.ErrorIs(t, s.InsertAt([]byte("x"), -1), container.ErrInvalidIndex)
				checkChain(t, c)
			})

			t.Run("full", func(t *testing.T) {
				s, c := v.make(t, 2, nil)
				require.NoError(t, container.Fill(s, bs("a", "b")...))

				assert.True(t, s.IsFull())
				assert.ErrorIs(t, s.InsertLast([]byte("c")), container.ErrNotEnoughCapacity)
				assert.ErrorIs(t, s.InsertFirst([]byte("c")), container.ErrNotEnoughCapacity)
				assert.ErrorIs(t, s.InsertAt([]byte("c"), 1), container.ErrNotEnoughCapacity)
				checkChain(t, c)
			})

			t.Run("bad payload", func(t *testing.T) {
				s, _ := v.make(t, 2, nil)

				assert.ErrorIs(t, s.InsertLast(nil), container.ErrSrcNull)
				assert.ErrorIs(t, s.InsertFirst([]byte{}), container.ErrBytesZero)
				assert.True(t, s.IsEmpty())
			})

			t.Run("allocation failure links nothing", func(t *testing.T) {
				s, c := v.make(t, 4, &container.Options{Allocator: memory.NewBudget(nil, 3)})
				require.NoError(t, s.InsertLast([]byte("ab")))

				assert.ErrorIs(t, s.InsertLast([]byte("cd")), container.ErrMemory)
				assert.Equal(t, 1, s.Length())
				checkChain(t, c)
			})
		})
	}
}

func TestList_Extract(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			t.Run("middle", func(t *testing.T) {
				s, c := v.make(t, 4, nil)
				require.NoError(t, container.Fill(s, bs("1", "2", "3")...))

				data, err := s.ExtractAt(1)

				require.NoError(t, err)
				assert.Equal(t, []byte("2"), data)
				assert.Equal(t, bs("1", "3"), contents(t, s))
				checkChain(t, c)
			})

			t.Run("ends", func(t *testing.T) {
				s, c := v.make(t, 4, nil)
				require.NoError(t, container.Fill(s, bs("1", "2", "3")...))

				last, err := s.ExtractLast()
				require.NoError(t, err)
				first, err := s.ExtractFirst()
				require.NoError(t, err)

				assert.Equal(t, []byte("3"), last)
				assert.Equal(t, []byte("1"), first)
				assert.Equal(t, bs("2"), contents(t, s))
				checkChain(t, c)

				_, err = s.ExtractLast()
				require.NoError(t, err)
				assert.Equal(t, none, c.head)
				assert.Equal(t, none, c.tail)
			})

			t.Run("empty and out of range", func(t *testing.T) {
				s, _ := v.make(t, 2, nil)

				_, err := s.ExtractFirst()
				assert.ErrorIs(t, err, container.ErrListEmpty)
				_, err = s.ExtractLast()
				assert.ErrorIs(t, err, container.ErrListEmpty)
				_, err = s.First()
				assert.ErrorIs(t, err, container.ErrListEmpty)

				require.NoError(t, s.InsertLast([]byte("a")))
				_, err = s.ExtractAt(1)
				assert.ErrorIs(t, err, container.ErrInvalidIndex)
				_, err = s.At(-1)
				assert.ErrorIs(t, err, container.ErrInvalidIndex)
			})

			t.Run("round trip", func(t *testing.T) {
				s, c := v.make(t, 4, nil)
				require.NoError(t, container.Fill(s, bs("a", "b")...))

				require.NoError(t, s.InsertFirst([]byte("x")))
				data, err := s.ExtractFirst()

				require.NoError(t, err)
				assert.Equal(t, []byte("x"), data)
				assert.Equal(t, bs("a", "b"), contents(t, s))
				checkChain(t, c)
			})

			t.Run("cells are reused", func(t *testing.T) {
				s, c := v.make(t, 3, nil)
				for i := 0; i < 20; i++ {
					require.NoError(t, s.InsertLast([]byte{byte(i + 1)}))
					if s.IsFull() {
						_, err := s.ExtractFirst()
						require.NoError(t, err)
					}
				}

				assert.LessOrEqual(t, len(c.cells.cells), 3)
				checkChain(t, c)
			})
		})
	}
}

func TestList_Access(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			s, _ := v.make(t, 8, nil)
			require.NoError(t, container.Fill(s, bs("a", "b", "c", "d", "e")...))

			for i, want := range []string{"a", "b", "c", "d", "e"} {
				got, err := s.At(i)
				require.NoError(t, err)
				assert.Equal(t, []byte(want), got, "index %d", i)
			}

			first, err := s.First()
			require.NoError(t, err)
			last, err := s.Last()
			require.NoError(t, err)
			assert.Equal(t, []byte("a"), first)
			assert.Equal(t, []byte("e"), last)
		})
	}
}

func TestList_Resize(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			t.Run("shrink releases the tail", func(t *testing.T) {
				budget := memory.NewBudget(nil, 64)
				s, c := v.make(t, 4, &container.Options{Allocator: budget})
				require.NoError(t, container.Fill(s, bs("aa", "bb", "cc", "dd")...))

				require.NoError(t, s.Resize(2))

				assert.Equal(t, bs("aa", "bb"), contents(t, s))
				assert.True(t, s.IsFull())
				assert.Equal(t, int64(4), budget.Stats().BytesInUse)
				checkChain(t, c)

				last, err := s.Last()
				require.NoError(t, err)
				assert.Equal(t, []byte("bb"), last)
			})

			t.Run("grow", func(t *testing.T) {
				s, c := v.make(t, 1, nil)
				require.NoError(t, s.InsertLast([]byte("a")))

				require.NoError(t, s.Resize(3))

				assert.False(t, s.IsFull())
				require.NoError(t, s.InsertLast([]byte("b")))
				checkChain(t, c)
			})

			t.Run("zero", func(t *testing.T) {
				s, _ := v.make(t, 1, nil)
				assert.ErrorIs(t, s.Resize(0), container.ErrSizeZero)
			})
		})
	}
}

func TestList_Concat(t *testing.T) {
	t.Run("singly", func(t *testing.T) {
		a, err := New(2, nil)
		require.NoError(t, err)
		b, err := New(3, nil)
		require.NoError(t, err)
		require.NoError(t, container.Fill(a, bs("1", "2")...))
		require.NoError(t, container.Fill(b, bs("3", "4")...))

		require.NoError(t, a.Concat(b))

		assert.Equal(t, bs("1", "2", "3", "4"), contents(t, a))
		assert.Equal(t, 5, a.Capacity())
		assert.Equal(t, bs("3", "4"), contents(t, b))
		checkChain(t, a.core())

		require.NoError(t, b.Concat(b))
		assert.Equal(t, bs("3", "4", "3", "4"), contents(t, b))
		checkChain(t, b.core())
	})

	t.Run("doubly", func(t *testing.T) {
		a, err := NewDoubly(2, nil)
		require.NoError(t, err)
		b, err := NewDoubly(2, nil)
		require.NoError(t, err)
		require.NoError(t, container.Fill(a, bs("1", "2")...))
		require.NoError(t, container.Fill(b, bs("3", "4")...))

		require.NoError(t, a.Concat(b))

		assert.Equal(t, bs("1", "2", "3", "4"), contents(t, a))
		assert.Equal(t, 4, a.Capacity())
		checkChain(t, a.core())

		last, err := a.ExtractLast()
		require.NoError(t, err)
		assert.Equal(t, []byte("4"), last)
	})

	t.Run("allocation failure leaves target unchanged", func(t *testing.T) {
		a, err := New(2, &container.Options{Allocator: memory.NewBudget(nil, 3)})
		require.NoError(t, err)
		b, err := New(2, nil)
		require.NoError(t, err)
		require.NoError(t, a.InsertLast([]byte("1")))
		require.NoError(t, container.Fill(b, bs("22", "33")...))

		assert.ErrorIs(t, a.Concat(b), container.ErrMemory)
		assert.Equal(t, bs("1"), contents(t, a))
		assert.Equal(t, 2, a.Capacity())
	})

	t.Run("nil source", func(t *testing.T) {
		a, err := New(2, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, a.Concat(nil), container.ErrListNull)
	})
}

func TestList_Lifecycle(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			budget := memory.NewBudget(nil, 64)
			s, c := v.make(t, 4, &container.Options{Allocator: budget})
			require.NoError(t, container.Fill(s, bs("ab", "cd")...))

			require.NoError(t, s.SoftReset())
			assert.True(t, s.IsEmpty())
			assert.Equal(t, int64(4), budget.Stats().BytesInUse)
			checkChain(t, c)

			require.NoError(t, container.Fill(s, bs("ef")...))
			require.NoError(t, s.Reset())
			assert.Equal(t, int64(4), budget.Stats().BytesInUse)

			require.NoError(t, container.Fill(s, bs("gh")...))
			require.NoError(t, s.Destroy())
			assert.Equal(t, int64(4), budget.Stats().BytesInUse)
			assert.ErrorIs(t, s.InsertLast([]byte("x")), container.ErrStorageNull)
			assert.NoError(t, s.Destroy())

			var buf bytes.Buffer
			s.Print(&buf)
			assert.Equal(t, "null\n", buf.String())
		})
	}
}

func TestList_NilReceiver(t *testing.T) {
	var l *List
	var d *DLList

	assert.True(t, l.IsEmpty())
	assert.False(t, d.IsFull())
	assert.ErrorIs(t, l.InsertLast([]byte("a")), container.ErrListNull)
	assert.ErrorIs(t, d.InsertFirst([]byte("a")), container.ErrListNull)
	_, err := d.ExtractLast()
	assert.ErrorIs(t, err, container.ErrListNull)
	assert.ErrorIs(t, l.Destroy(), container.ErrListNull)
	assert.Equal(t, container.CodeListNull, container.CodeOf(l.Reset()))

	t.Run("errors name the list kind", func(t *testing.T) {
		var opErr *container.OpError

		require.ErrorAs(t, d.InsertLast([]byte("a")), &opErr)
		assert.Equal(t, "dllist", opErr.Kind)
		assert.Equal(t, container.OpInsertLast, opErr.Op)

		require.ErrorAs(t, l.Resize(2), &opErr)
		assert.Equal(t, "list", opErr.Kind)

		require.ErrorAs(t, d.Concat(nil), &opErr)
		assert.Equal(t, "dllist", opErr.Kind)
	})

	t.Run("nil lists print null and are never full", func(t *testing.T) {
		var buf bytes.Buffer
		d.Print(&buf)
		l.Print(&buf)

		assert.Equal(t, "null\nnull\n", buf.String())
		assert.False(t, l.IsFull())
		assert.Equal(t, 0, d.Capacity())
	})
}

func TestList_TraverseAndPrint(t *testing.T) {
	d, err := NewDoubly(3, nil)
	require.NoError(t, err)
	require.NoError(t, container.Fill(d, bs("ab", "cd")...))

	require.NoError(t, d.Traverse(func(n container.Node) {
		_ = n.MemConcat([]byte("!"))
	}))
	assert.Equal(t, bs("ab!", "cd!"), contents(t, d))
	assert.ErrorIs(t, d.Traverse(nil), container.ErrNull)

	var buf bytes.Buffer
	d.Print(&buf)
	assert.Contains(t, buf.String(), "[dllist ")
	assert.Contains(t, buf.String(), "length: 2 capacity: 3")
	assert.Contains(t, buf.String(), `"cd!"`)
}

func TestList_MatchesSliceModel(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(11))
			s, c := v.make(t, 12, nil)
			var model [][]byte

			for step := 0; step < 1500; step++ {
				payload := []byte(fmt.Sprintf("p%d", step))
				switch op := rng.Intn(5); {
				case op == 0 && len(model) < 12:
					require.NoError(t, s.InsertFirst(payload))
					model = append([][]byte{payload}, model...)
				case op == 1 && len(model) < 12:
					pos := rng.Intn(len(model) + 1)
					require.NoError(t, s.InsertAt(payload, pos))
					model = append(model[:pos], append([][]byte{payload}, model[pos:]...)...)
				case op == 2 && len(model) > 0:
					data, err := s.ExtractLast()
					require.NoError(t, err)
					assert.Equal(t, model[len(model)-1], data)
					model = model[:len(model)-1]
				case op == 3 && len(model) > 0:
					pos := rng.Intn(len(model))
					data, err := s.ExtractAt(pos)
					require.NoError(t, err)
					assert.Equal(t, model[pos], data)
					model = append(model[:pos], model[pos+1:]...)
				case op == 4 && len(model) > 0:
					pos := rng.Intn(len(model))
					data, err := s.At(pos)
					require.NoError(t, err)
					assert.Equal(t, model[pos], data)
				}
				checkChain(t, c)
			}
		})
	}
}
