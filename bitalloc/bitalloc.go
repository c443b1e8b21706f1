// Package bitalloc tracks which integer-indexed slots of a pool are in use.
//
// Allocation is first-fit: FirstFree always reports the lowest free index.
package bitalloc

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Allocator is a growable set of used/free bits.
type Allocator struct {
	bits *bitset.BitSet
	n    int

	// cursor is a lower bound for the first free bit: every bit below it is set.
	cursor int
}

// New creates an allocator of n bits, all free.
func New(n int) *Allocator {
	if n < 0 {
		panic(fmt.Sprintf("bitalloc: negative size %d", n))
	}
	return &Allocator{bits: bitset.New(uint(n)), n: n}
}

// Len returns the number of bits tracked.
func (a *Allocator) Len() int {
	return a.n
}

// Count returns the number of used bits.
func (a *Allocator) Count() int {
	return int(a.bits.Count())
}

// FirstFree returns the lowest free index, or false if every bit is used.
func (a *Allocator) FirstFree() (int, bool) {
	if a.cursor >= a.n {
		return 0, false
	}
	i, ok := a.bits.NextClear(uint(a.cursor))
	if !ok || int(i) >= a.n {
		a.cursor = a.n
		return 0, false
	}
	a.cursor = int(i)
	return a.cursor, true
}

// Take marks the lowest free index used and returns it.
func (a *Allocator) Take() (int, bool) {
	i, ok := a.FirstFree()
	if !ok {
		return 0, false
	}
	a.Set(i)
	return i, true
}

// Set marks bit i used.
func (a *Allocator) Set(i int) {
	a.check(i)
	a.bits.Set(uint(i))
	if i == a.cursor {
		a.cursor++
	}
}

// Clear marks bit i free.
func (a *Allocator) Clear(i int) {
	a.check(i)
	a.bits.Clear(uint(i))
	if i < a.cursor {
		a.cursor = i
	}
}

// IsSet reports whether bit i is used.
func (a *Allocator) IsSet(i int) bool {
	a.check(i)
	return a.bits.Test(uint(i))
}

// IsFull reports whether no bit is free.
func (a *Allocator) IsFull() bool {
	return a.Count() == a.n
}

// IsClear reports whether no bit is used.
func (a *Allocator) IsClear() bool {
	return a.bits.Count() == 0
}

// Reset frees every bit.
func (a *Allocator) Reset() {
	a.bits.ClearAll()
	a.cursor = 0
}

// Grow extends the allocator to n bits. New bits are free; existing bits keep
// their state. Shrinking is not supported.
func (a *Allocator) Grow(n int) {
	if n < a.n {
		panic(fmt.Sprintf("bitalloc: cannot shrink from %d to %d bits", a.n, n))
	}
	if n == a.n {
		return
	}
	grown := bitset.New(uint(n))
	grown.InPlaceUnion(a.bits)
	a.bits = grown
	if a.cursor > a.n {
		a.cursor = a.n
	}
	a.n = n
}

// Used calls fn for each used index in ascending order.
func (a *Allocator) Used(fn func(i int)) {
	for i, ok := a.bits.NextSet(0); ok && int(i) < a.n; i, ok = a.bits.NextSet(i + 1) {
		fn(int(i))
	}
}

func (a *Allocator) check(i int) {
	if i < 0 || i >= a.n {
		panic(fmt.Sprintf("bitalloc: index %d out of range [0, %d)", i, a.n))
	}
}
