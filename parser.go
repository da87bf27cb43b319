package janus

import (
	"fmt"
)

// Unit type.
type Unit struct{}

// Parser consumes a prefix of the input held in `in` and produces
// type O. Higher order parsers are constructed through application
// of combinators on Parsers of different types.
//
// On success the input is advanced past the consumed prefix; the
// remainder stays in the cursor for subsequent parsers. On failure
// the input must be left observationally unchanged. Combinators
// uphold the second half of that contract by snapshotting the input
// value before running sub-parsers and restoring the snapshot on
// failure, which requires that no parser ever writes through an
// input's backing arrays: mutation is always field replacement or
// re-slicing.
type Parser[I, O any] interface {
	Parse(in *I) (O, error)
}

// Printer is a Parser that can also run backwards: Print constructs
// a minimal input value that, if fed to Parse, would yield `out`.
// Minimal means the returned input is the Appendable identity
// everywhere `out` did not constrain it.
type Printer[I, O any] interface {
	Parser[I, O]
	Print(out O) (I, error)
}

// ParseFunc adapts a plain function into a Parser.
type ParseFunc[I, O any] func(*I) (O, error)

// Parse implements the Parser interface.
func (f ParseFunc[I, O]) Parse(in *I) (O, error) {
	return f(in)
}

// Parse runs `p` against `in` and returns the parsed value together
// with the unconsumed remainder of the input. This is the main entry
// point for running parsers.
func Parse[I, O any](in I, p Parser[I, O]) (O, I, error) {
	out, err := p.Parse(&in)
	return out, in, err
}

// Name associates `name` with parser `p` which will
// be reported in the case of failure.
func Name[I, O any](name string, p Printer[I, O]) Printer[I, O] {
	return named[I, O]{name: name, p: p}
}

type named[I, O any] struct {
	name string
	p    Printer[I, O]
}

func (n named[I, O]) Parse(in *I) (O, error) {
	val, err := n.p.Parse(in)
	if err != nil {
		var zero O
		return zero, fmt.Errorf("%s failed: %w", n.name, err)
	}

	return val, nil
}

func (n named[I, O]) Print(out O) (I, error) {
	val, err := n.p.Print(out)
	if err != nil {
		var zero I
		return zero, fmt.Errorf("%s failed: %w", n.name, err)
	}

	return val, nil
}

// Finish ensures that the completed parser has successfully consumed
// the entirety of the input. Callers that want exhaustive consumption
// wrap their root parser in Finish; anything left over fails with
// ErrUnconsumed.
func Finish[I Consumable, O any](p Parser[I, O]) Parser[I, O] {
	return ParseFunc[I, O](func(in *I) (O, error) {
		saved := *in

		parsed, err := p.Parse(in)
		if err != nil {
			var zero O
			return zero, err
		}

		if !(*in).Empty() {
			leftover := *in
			*in = saved
			var zero O
			return zero, &ParseError{
				Kind:     ErrUnconsumed,
				Expected: "end of input",
				At:       fmt.Sprintf("%v", leftover),
			}
		}

		return parsed, nil
	})
}

// LookAhead applies the provided parser `p` without consuming any
// input regardless of whether `p` succeeds or fails.
func LookAhead[I, O any](p Parser[I, O]) Parser[I, O] {
	return ParseFunc[I, O](func(in *I) (O, error) {
		saved := *in
		defer func() {
			*in = saved
		}()

		return p.Parse(in)
	})
}

// Return creates a parser that will always succeed and return `v`
// without consuming any input. Printing yields the identity input
// when the printed value equals `v` and fails otherwise, so that an
// enclosing Or can fall through to its next branch.
func Return[I, O any](v O) Printer[I, O] {
	return ret[I, O]{v: v}
}

type ret[I, O any] struct {
	v O
}

func (r ret[I, O]) Parse(in *I) (O, error) {
	return r.v, nil
}

func (r ret[I, O]) Print(out O) (I, error) {
	var zero I
	if !deepEqual(out, r.v) {
		return zero, &PrintError{
			Kind:   ErrRoundTripFailed,
			Reason: fmt.Sprintf("constant parser cannot print %v", out),
		}
	}

	return zero, nil
}

// Fail returns a parser that will always fail with the error `err`.
// Printing fails with the same error.
func Fail[I, O any](err error) Printer[I, O] {
	return failp[I, O]{err: err}
}

type failp[I, O any] struct {
	err error
}

func (f failp[I, O]) Parse(in *I) (O, error) {
	var zero O
	return zero, f.err
}

func (f failp[I, O]) Print(out O) (I, error) {
	var zero I
	return zero, f.err
}

// Bind creates a parser that will run `p`, pass its result to `f`,
// run the parser that `f` produces and return its result.
//
// The produced parser depends on runtime data and therefore has no
// print direction; Bind is parser-only.
func Bind[I, A, B any](p Parser[I, A], f func(A) Parser[I, B]) Parser[I, B] {
	return ParseFunc[I, B](func(in *I) (B, error) {
		saved := *in

		val, err := p.Parse(in)
		if err != nil {
			var zero B
			return zero, err
		}

		out, err := f(val).Parse(in)
		if err != nil {
			*in = saved
			var zero B
			return zero, err
		}

		return out, nil
	})
}
