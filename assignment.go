package partition

import (
	"math/bits"
	"strings"
)

// An Assignment maps each vertex or number to one of the two partition
// halves. Bit value 0 means the first half, 1 the second. Assignments
// are produced by solvers and never mutated afterwards.
type Assignment []uint8

// AssignmentFromIndex expands an enumeration index into an Assignment
// of length n. Bit i of the index becomes element i, so indices in
// increasing integer order enumerate assignments in the canonical
// brute-force order.
func AssignmentFromIndex(index uint64, n int) Assignment {
	a := make(Assignment, n)
	for i := 0; i < n; i++ {
		a[i] = uint8((index >> uint(i)) & 1)
	}
	return a
}

// Index is the inverse of AssignmentFromIndex.
func (a Assignment) Index() uint64 {
	var idx uint64
	for i, b := range a {
		idx |= uint64(b&1) << uint(i)
	}
	return idx
}

// Ones counts the elements assigned to the second half.
func (a Assignment) Ones() int {
	ones := 0
	for _, b := range a {
		ones += int(b & 1)
	}
	return ones
}

// Balanced reports whether the two halves have equal size. Odd-length
// assignments are never balanced.
func (a Assignment) Balanced() bool {
	return len(a)%2 == 0 && len(a) > 0 && a.Ones() == len(a)/2
}

// Complement flips every bit, swapping the two halves.
func (a Assignment) Complement() Assignment {
	c := make(Assignment, len(a))
	for i, b := range a {
		c[i] = 1 - (b & 1)
	}
	return c
}

// Spins converts bits to spin variables with s = 1 - 2b, so bit 0 maps
// to +1 and bit 1 to -1.
func (a Assignment) Spins() []int8 {
	s := make([]int8, len(a))
	for i, b := range a {
		s[i] = 1 - 2*int8(b&1)
	}
	return s
}

// SpinsToAssignment converts spin variables back to bits. Spin +1 maps
// to bit 0, spin -1 to bit 1.
func SpinsToAssignment(spins []int8) Assignment {
	a := make(Assignment, len(spins))
	for i, s := range spins {
		if s < 0 {
			a[i] = 1
		}
	}
	return a
}

// String renders the assignment as a bit string, element 0 first.
func (a Assignment) String() string {
	var sb strings.Builder
	sb.Grow(len(a))
	for _, b := range a {
		sb.WriteByte('0' + (b & 1))
	}
	return sb.String()
}

// balancedPopcount reports whether an enumeration index has exactly
// n/2 one-bits, i.e. whether it encodes a balanced assignment.
func balancedPopcount(index uint64, n int) bool {
	return bits.OnesCount64(index) == n/2
}
