package janus

import (
	"fmt"

	"go.uber.org/multierr"
)

// Or runs `p` and returns the result if it succeeds. If `p` fails
// the input is rewound and `q` runs instead.
//
// Printing tries `p` first and verifies the round trip: the printed
// input must re-parse to the printed value, otherwise the branch is
// rejected and `q` prints instead. The verification is what makes
// alternation printable at all; without it the first branch could
// emit input that the parse direction would hand to the other branch.
func Or[I, A any](p Printer[I, A], q Printer[I, A]) Printer[I, A] {
	return or[I, A]{p: p, q: q}
}

type or[I, A any] struct {
	p Printer[I, A]
	q Printer[I, A]
}

func (o or[I, A]) Parse(in *I) (A, error) {
	saved := *in

	res, err1 := o.p.Parse(in)
	if err1 == nil {
		return res, nil
	}

	*in = saved

	res, err2 := o.q.Parse(in)
	if err2 != nil {
		*in = saved
		var zero A
		return zero, multierr.Combine(err1, err2)
	}

	return res, nil
}

func (o or[I, A]) Print(out A) (I, error) {
	return printFirst(out, o.p, o.q)
}

// Choice runs each parser in `ps` in order until one succeeds and
// returns the result. In the case that none of the parsers succeeds,
// the parser will fail with the message "expected {msg}" wrapping the
// accumulated branch errors.
//
// Printing picks the first branch whose printed input survives the
// round-trip check.
func Choice[I, A any](msg string, ps ...Printer[I, A]) Printer[I, A] {
	return choice[I, A]{msg: msg, ps: ps}
}

type choice[I, A any] struct {
	msg string
	ps  []Printer[I, A]
}

func (c choice[I, A]) Parse(in *I) (A, error) {
	saved := *in

	var errs error
	for _, p := range c.ps {
		val, err := p.Parse(in)
		if err == nil {
			return val, nil
		}

		errs = multierr.Append(errs, err)

		*in = saved
	}

	var zero A
	return zero, fmt.Errorf("expected %s: %w", c.msg, errs)
}

func (c choice[I, A]) Print(out A) (I, error) {
	return printFirst(out, c.ps...)
}

// printFirst prints `out` with the first branch that both prints
// successfully and round-trips: re-parsing the printed input must
// yield `out` again. Branches that cannot print (one-way maps,
// foreign variants) or whose print does not re-parse are skipped;
// only when every branch fails does the accumulated error surface.
func printFirst[I, A any](out A, ps ...Printer[I, A]) (I, error) {
	var errs error

	for _, p := range ps {
		printed, err := p.Print(out)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		probe := printed
		got, err := p.Parse(&probe)
		if err != nil || !deepEqual(got, out) {
			errs = multierr.Append(errs, roundTripError(out))
			continue
		}

		return printed, nil
	}

	var zero I
	return zero, errs
}
