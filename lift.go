package janus

// Lift promotes a one-way function into a parser. The returned
// parser first executes the provided parser `p` before transforming
// the returned value of `p` using `f` and returning it.
//
// Because `f` has no inverse, the result cannot print: its Print
// fails with ErrUnprintableBranch. Pipelines that need the print
// direction use Map with an Iso instead.
func Lift[I, A, B any](f func(A) (B, error), p Printer[I, A]) Printer[I, B] {
	return Map(p, Iso[A, B]{
		Apply: f,
		Unapply: func(B) (A, error) {
			var zero A
			return zero, ErrUnprintableBranch
		},
	})
}

// Lift2 promotes 2-ary one-way functions into a parser over two
// sequenced parsers. Like Lift, the result cannot print.
func Lift2[I Appendable[I], A, B, C any](
	f func(A, B) (C, error),
	p1 Printer[I, A],
	p2 Printer[I, B],
) Printer[I, C] {
	return Map2(p1, p2, Iso2[A, B, C]{
		Apply: f,
		Unapply: func(C) (A, B, error) {
			var zeroA A
			var zeroB B
			return zeroA, zeroB, ErrUnprintableBranch
		},
	})
}

// Must converts a function that takes a single argument and returns
// a single value and error and returns a function that instead of
// returning an error, panics when it encounters an error.
//
// This function is provided as a convenience for building Iso values
// out of conversions that cannot fail on validated data.
func Must[A, B any](f func(A) (B, error)) func(A) B {
	return func(a A) B {
		b, err := f(a)
		if err != nil {
			panic(err)
		}

		return b
	}
}
