package bitalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorFirstFit(t *testing.T) {
	a := New(16)
	require.True(t, a.IsClear())
	require.False(t, a.IsFull())

	for want := 0; want < 16; want++ {
		got, ok := a.Take()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, a.IsFull())
	_, ok := a.FirstFree()
	assert.False(t, ok)

	a.Clear(9)
	a.Clear(3)
	got, ok := a.FirstFree()
	require.True(t, ok)
	assert.Equal(t, 3, got, "lowest free index wins")

	a.Set(3)
	got, ok = a.FirstFree()
	require.True(t, ok)
	assert.Equal(t, 9, got)
}

func TestAllocatorCursorDoesNotSkip(t *testing.T) {
	cases := []struct {
		name  string
		set   []int
		clear []int
		want  int
		ok    bool
	}{
		{"empty", nil, nil, 0, true},
		{"gap_after_prefix", []int{0, 1, 2, 4}, nil, 3, true},
		{"out_of_order_sets", []int{5, 0, 2, 1}, nil, 3, true},
		{"clear_below_cursor", []int{0, 1, 2, 3}, []int{1}, 1, true},
		{"full", []int{0, 1, 2, 3, 4, 5, 6, 7}, nil, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := New(8)
			for _, i := range c.set {
				a.Set(i)
			}
			for _, i := range c.clear {
				a.Clear(i)
			}
			got, ok := a.FirstFree()
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestAllocatorGrow(t *testing.T) {
	a := New(8)
	for i := 0; i < 8; i++ {
		a.Set(i)
	}
	require.True(t, a.IsFull())

	a.Grow(16)
	assert.Equal(t, 16, a.Len())
	assert.Equal(t, 8, a.Count())
	assert.False(t, a.IsFull())
	assert.True(t, a.IsSet(7))
	assert.False(t, a.IsSet(8))

	got, ok := a.Take()
	require.True(t, ok)
	assert.Equal(t, 8, got)
}

func TestAllocatorOutOfRangePanics(t *testing.T) {
	a := New(8)
	assert.Panics(t, func() { a.Set(8) })
	assert.Panics(t, func() { a.Clear(-1) })
	assert.Panics(t, func() { a.IsSet(100) })
	assert.Panics(t, func() { a.Grow(4) })
}

func TestAllocatorUsedAndReset(t *testing.T) {
	a := New(24)
	for _, i := range []int{2, 9, 17} {
		a.Set(i)
	}
	var seen []int
	a.Used(func(i int) { seen = append(seen, i) })
	assert.Equal(t, []int{2, 9, 17}, seen)

	a.Reset()
	assert.True(t, a.IsClear())
	got, ok := a.FirstFree()
	require.True(t, ok)
	assert.Equal(t, 0, got)
}
