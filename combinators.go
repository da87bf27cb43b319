package janus

import (
	"fmt"
	"reflect"
)

// DiscardLeft runs `p`, discards its unit result and then runs `q`
// and returns its result. Printing emits `p`'s fragment followed by
// `q`'s, merged by Append.
func DiscardLeft[I Appendable[I], B any](p Printer[I, Unit], q Printer[I, B]) Printer[I, B] {
	return discardLeft[I, B]{p: p, q: q}
}

type discardLeft[I Appendable[I], B any] struct {
	p Printer[I, Unit]
	q Printer[I, B]
}

func (d discardLeft[I, B]) Parse(in *I) (B, error) {
	saved := *in

	if _, err := d.p.Parse(in); err != nil {
		var zero B
		return zero, err
	}

	out, err := d.q.Parse(in)
	if err != nil {
		*in = saved
		var zero B
		return zero, err
	}

	return out, nil
}

func (d discardLeft[I, B]) Print(out B) (I, error) {
	var zero I

	left, err := d.p.Print(Unit{})
	if err != nil {
		return zero, err
	}

	right, err := d.q.Print(out)
	if err != nil {
		return zero, err
	}

	return left.Append(right), nil
}

// DiscardRight runs `p`, then runs `q`, discards its unit result and
// returns the initial result of `p`. Printing emits `p`'s fragment
// followed by `q`'s, merged by Append.
func DiscardRight[I Appendable[I], A any](p Printer[I, A], q Printer[I, Unit]) Printer[I, A] {
	return discardRight[I, A]{p: p, q: q}
}

type discardRight[I Appendable[I], A any] struct {
	p Printer[I, A]
	q Printer[I, Unit]
}

func (d discardRight[I, A]) Parse(in *I) (A, error) {
	saved := *in

	out, err := d.p.Parse(in)
	if err != nil {
		var zero A
		return zero, err
	}

	if _, err := d.q.Parse(in); err != nil {
		*in = saved
		var zero A
		return zero, err
	}

	return out, nil
}

func (d discardRight[I, A]) Print(out A) (I, error) {
	var zero I

	left, err := d.p.Print(out)
	if err != nil {
		return zero, err
	}

	right, err := d.q.Print(Unit{})
	if err != nil {
		return zero, err
	}

	return left.Append(right), nil
}

// Both runs `p` followed by `q` and returns both results as a pair.
// Printing emits `p`'s fragment followed by `q`'s, merged by Append.
func Both[I Appendable[I], A, B any](p Printer[I, A], q Printer[I, B]) Printer[I, Pair[A, B]] {
	return both[I, A, B]{p: p, q: q}
}

type both[I Appendable[I], A, B any] struct {
	p Printer[I, A]
	q Printer[I, B]
}

func (b both[I, A, B]) Parse(in *I) (Pair[A, B], error) {
	saved := *in

	var zero Pair[A, B]

	left, err := b.p.Parse(in)
	if err != nil {
		return zero, err
	}

	right, err := b.q.Parse(in)
	if err != nil {
		*in = saved
		return zero, err
	}

	return MakePair(left, right), nil
}

func (b both[I, A, B]) Print(out Pair[A, B]) (I, error) {
	var zero I

	left, err := b.p.Print(out.Left)
	if err != nil {
		return zero, err
	}

	right, err := b.q.Print(out.Right)
	if err != nil {
		return zero, err
	}

	return left.Append(right), nil
}

// Seq runs each unit parser in `ps` in sequence. Printing emits each
// fragment in order, merged by Append.
func Seq[I Appendable[I]](ps ...Printer[I, Unit]) Printer[I, Unit] {
	return seq[I](ps)
}

type seq[I Appendable[I]] []Printer[I, Unit]

func (q seq[I]) Parse(in *I) (Unit, error) {
	saved := *in

	for _, p := range q {
		if _, err := p.Parse(in); err != nil {
			*in = saved
			return Unit{}, err
		}
	}

	return Unit{}, nil
}

func (q seq[I]) Print(Unit) (I, error) {
	var out I

	for _, p := range q {
		frag, err := p.Print(Unit{})
		if err != nil {
			var zero I
			return zero, err
		}

		out = out.Append(frag)
	}

	return out, nil
}

// Iso is an isomorphism between A and B: Apply and Unapply must be
// mutual inverses on the parser's image. Variant constructors and
// destructors of a sum type are the canonical instance.
type Iso[A, B any] struct {
	Apply   func(A) (B, error)
	Unapply func(B) (A, error)
}

// Map transforms the output of `p` through the isomorphism `iso`,
// keeping the parser printable. For one-way transformations use Lift.
func Map[I, A, B any](p Printer[I, A], iso Iso[A, B]) Printer[I, B] {
	return mapped[I, A, B]{p: p, iso: iso}
}

type mapped[I, A, B any] struct {
	p   Printer[I, A]
	iso Iso[A, B]
}

func (m mapped[I, A, B]) Parse(in *I) (B, error) {
	saved := *in

	var zero B

	val, err := m.p.Parse(in)
	if err != nil {
		return zero, err
	}

	out, err := m.iso.Apply(val)
	if err != nil {
		*in = saved
		return zero, err
	}

	return out, nil
}

func (m mapped[I, A, B]) Print(out B) (I, error) {
	val, err := m.iso.Unapply(out)
	if err != nil {
		var zero I
		return zero, &PrintError{
			Kind:   ErrUnprintableBranch,
			Reason: err.Error(),
		}
	}

	return m.p.Print(val)
}

// Iso2 is an invertible 2-ary combine: Apply merges two parsed values
// and Unapply splits them back apart.
type Iso2[A, B, C any] struct {
	Apply   func(A, B) (C, error)
	Unapply func(C) (A, B, error)
}

// Map2 sequences `p1` and `p2` and flattens their outputs through
// `iso`. Printing splits the output, prints each piece and merges the
// fragments by Append.
func Map2[I Appendable[I], A, B, C any](p1 Printer[I, A], p2 Printer[I, B], iso Iso2[A, B, C]) Printer[I, C] {
	return Map(Both(p1, p2), Iso[Pair[A, B], C]{
		Apply: func(p Pair[A, B]) (C, error) {
			return iso.Apply(p.Left, p.Right)
		},
		Unapply: func(c C) (Pair[A, B], error) {
			a, b, err := iso.Unapply(c)
			return MakePair(a, b), err
		},
	})
}

// Iso3 is an invertible 3-ary combine.
type Iso3[A, B, C, D any] struct {
	Apply   func(A, B, C) (D, error)
	Unapply func(D) (A, B, C, error)
}

// Map3 sequences three parsers and flattens their outputs through
// `iso`.
func Map3[I Appendable[I], A, B, C, D any](
	p1 Printer[I, A],
	p2 Printer[I, B],
	p3 Printer[I, C],
	iso Iso3[A, B, C, D],
) Printer[I, D] {
	return Map(Both(Both(p1, p2), p3), Iso[Pair[Pair[A, B], C], D]{
		Apply: func(p Pair[Pair[A, B], C]) (D, error) {
			return iso.Apply(p.Left.Left, p.Left.Right, p.Right)
		},
		Unapply: func(d D) (Pair[Pair[A, B], C], error) {
			a, b, c, err := iso.Unapply(d)
			return MakePair(MakePair(a, b), c), err
		},
	})
}

// Iso4 is an invertible 4-ary combine.
type Iso4[A, B, C, D, E any] struct {
	Apply   func(A, B, C, D) (E, error)
	Unapply func(E) (A, B, C, D, error)
}

// Map4 sequences four parsers and flattens their outputs through
// `iso`. Deeper shapes nest Both and Map directly.
func Map4[I Appendable[I], A, B, C, D, E any](
	p1 Printer[I, A],
	p2 Printer[I, B],
	p3 Printer[I, C],
	p4 Printer[I, D],
	iso Iso4[A, B, C, D, E],
) Printer[I, E] {
	return Map(Both(Both(p1, p2), Both(p3, p4)), Iso[Pair[Pair[A, B], Pair[C, D]], E]{
		Apply: func(p Pair[Pair[A, B], Pair[C, D]]) (E, error) {
			return iso.Apply(p.Left.Left, p.Left.Right, p.Right.Left, p.Right.Right)
		},
		Unapply: func(e E) (Pair[Pair[A, B], Pair[C, D]], error) {
			a, b, c, d, err := iso.Unapply(e)
			return MakePair(MakePair(a, b), MakePair(c, d)), err
		},
	})
}

// Maybe constructs a parser that will attempt to parse the input
// using the provided parser `p`. If the parse is successful it will
// return a pointer to the parsed value, and a nil pointer otherwise,
// with the input rewound so that no input appears to have been
// consumed.
//
// Maybe parsers can never fail. Printing nil emits the identity
// input; printing a non-nil pointer delegates to `p`.
func Maybe[I, A any](p Printer[I, A]) Printer[I, *A] {
	return maybe[I, A]{p: p}
}

type maybe[I, A any] struct {
	p Printer[I, A]
}

func (m maybe[I, A]) Parse(in *I) (*A, error) {
	saved := *in

	out, err := m.p.Parse(in)
	if err != nil {
		*in = saved
		return nil, nil
	}

	return &out, nil
}

func (m maybe[I, A]) Print(out *A) (I, error) {
	if out == nil {
		var zero I
		return zero, nil
	}

	return m.p.Print(*out)
}

// Option runs `p`, returning the result of `p` if it succeeds and
// `fallback` if it fails. Printing emits the identity input when the
// output equals the fallback and delegates to `p` otherwise.
func Option[I, A any](fallback A, p Printer[I, A]) Printer[I, A] {
	return option[I, A]{fallback: fallback, p: p}
}

type option[I, A any] struct {
	fallback A
	p        Printer[I, A]
}

func (o option[I, A]) Parse(in *I) (A, error) {
	saved := *in

	out, err := o.p.Parse(in)
	if err != nil {
		*in = saved
		return o.fallback, nil
	}

	return out, nil
}

func (o option[I, A]) Print(out A) (I, error) {
	if deepEqual(out, o.fallback) {
		var zero I
		return zero, nil
	}

	return o.p.Print(out)
}

// Many runs `p` zero or more times and returns a slice of results
// from the runs of `p`. Printing emits each element's fragment in
// order, merged by Append.
func Many[I Appendable[I], A any](p Printer[I, A]) Printer[I, []A] {
	return many[I, A]{p: p}
}

type many[I Appendable[I], A any] struct {
	p Printer[I, A]
}

func (m many[I, A]) Parse(in *I) ([]A, error) {
	var out []A

	for {
		saved := *in

		val, err := m.p.Parse(in)
		if err != nil {
			*in = saved
			return out, nil
		}

		out = append(out, val)
	}
}

func (m many[I, A]) Print(out []A) (I, error) {
	var merged I

	for _, val := range out {
		frag, err := m.p.Print(val)
		if err != nil {
			var zero I
			return zero, err
		}

		merged = merged.Append(frag)
	}

	return merged, nil
}

func deepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// roundTripError renders the value an Or branch printed but could not
// re-parse.
func roundTripError(out any) *PrintError {
	return &PrintError{
		Kind:   ErrRoundTripFailed,
		Reason: fmt.Sprintf("printing %v", out),
	}
}
