package movegen

import "math/bits"

// SquareSet is a set of board indices, one bit per square.
type SquareSet uint64

// Add returns the set with sq included. Off-board squares are ignored.
func (s SquareSet) Add(sq int) SquareSet {
	if sq < 0 || sq >= 64 {
		return s
	}
	return s | 1<<uint(sq)
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq int) bool {
	if sq < 0 || sq >= 64 {
		return false
	}
	return s&(1<<uint(sq)) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares returns the members in ascending order.
func (s SquareSet) Squares() []int {
	out := make([]int, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros64(v))
	}
	return out
}

// Mask returns a 64-entry slice with 1 for members and 0 otherwise.
func (s SquareSet) Mask() []int {
	out := make([]int, 64)
	for v := uint64(s); v != 0; v &= v - 1 {
		out[bits.TrailingZeros64(v)] = 1
	}
	return out
}
