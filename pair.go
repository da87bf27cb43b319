package janus

// Pair is a generic product type that holds two values of potentially
// different types. Sequencing combinators return it when both sides
// carry information.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// MakePair constructs a Pair from two values.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{
		Left:  a,
		Right: b,
	}
}
