package janus

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Literal matches and consumes the exact prefix `lit`, producing
// nothing. Printing emits `lit` itself.
func Literal[I Chunk](lit I) Printer[I, Unit] {
	return literal[I]{lit: lit}
}

type literal[I Chunk] struct {
	lit I
}

func (l literal[I]) Parse(in *I) (Unit, error) {
	if len(*in) < len(l.lit) || string((*in)[:len(l.lit)]) != string(l.lit) {
		return Unit{}, &ParseError{
			Kind:     ErrExpectedLiteral,
			Expected: fmt.Sprintf("%q", string(l.lit)),
			At:       position(*in),
		}
	}

	*in = (*in)[len(l.lit):]

	return Unit{}, nil
}

func (l literal[I]) Print(Unit) (I, error) {
	return l.lit, nil
}

// AnyRune consumes the first rune of a text input and returns it.
// It fails on empty input. Printing emits the rune's UTF-8 spelling.
var AnyRune Printer[Text, rune] = anyRune{}

type anyRune struct{}

func (anyRune) Parse(in *Text) (rune, error) {
	if len(*in) == 0 {
		return 0, &ParseError{
			Kind:     ErrEmptyInput,
			Expected: "any rune",
		}
	}

	r, w := utf8.DecodeRuneInString(string(*in))
	*in = (*in)[w:]

	return r, nil
}

func (anyRune) Print(out rune) (Text, error) {
	return Text(out), nil
}

// AnyByte consumes the first byte of a byte input and returns it.
// It fails on empty input.
var AnyByte Printer[Bytes, byte] = anyByte{}

type anyByte struct{}

func (anyByte) Parse(in *Bytes) (byte, error) {
	if len(*in) == 0 {
		return 0, &ParseError{
			Kind:     ErrEmptyInput,
			Expected: "any byte",
		}
	}

	b := (*in)[0]
	*in = (*in)[1:]

	return b, nil
}

func (anyByte) Print(out byte) (Bytes, error) {
	return Bytes{out}, nil
}

// Rest consumes all remaining input and returns the consumed slice.
// Rest never fails. Printing emits the value verbatim.
func Rest[I Chunk]() Printer[I, I] {
	return rest[I]{}
}

type rest[I Chunk] struct{}

func (rest[I]) Parse(in *I) (I, error) {
	out := *in

	var empty I
	*in = empty

	return out, nil
}

func (rest[I]) Print(out I) (I, error) {
	return out, nil
}

// String consumes the remainder of a text input as a plain string.
var String Printer[Text, string] = Map(Rest[Text](), Iso[Text, string]{
	Apply: func(t Text) (string, error) {
		return string(t), nil
	},
	Unapply: func(s string) (Text, error) {
		return Text(s), nil
	},
})

// Int greedily consumes the longest decimal prefix, with an optional
// leading sign, and returns it as an int. It fails when there are no
// digits or the value does not fit. Printing emits the canonical
// decimal spelling.
func Int[I Chunk]() Printer[I, int] {
	return intp[I]{}
}

type intp[I Chunk] struct{}

func (intp[I]) Parse(in *I) (int, error) {
	s := *in

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	j := digits(s, i)
	if j == i {
		return 0, &ParseError{
			Kind:     ErrUnexpectedInput,
			Expected: "integer",
			At:       position(s),
		}
	}

	n, err := strconv.ParseInt(string(s[:j]), 10, strconv.IntSize)
	if err != nil {
		return 0, &ParseError{
			Kind:     numericKind(err),
			Expected: "integer",
			At:       position(s),
		}
	}

	*in = s[j:]

	return int(n), nil
}

func (intp[I]) Print(out int) (I, error) {
	return I(strconv.Itoa(out)), nil
}

// Uint greedily consumes the longest decimal prefix, with no sign
// allowed, and returns it as a uint. It fails when there are no
// digits or the value does not fit.
func Uint[I Chunk]() Printer[I, uint] {
	return uintp[I]{}
}

type uintp[I Chunk] struct{}

func (uintp[I]) Parse(in *I) (uint, error) {
	s := *in

	j := digits(s, 0)
	if j == 0 {
		return 0, &ParseError{
			Kind:     ErrUnexpectedInput,
			Expected: "unsigned integer",
			At:       position(s),
		}
	}

	n, err := strconv.ParseUint(string(s[:j]), 10, strconv.IntSize)
	if err != nil {
		return 0, &ParseError{
			Kind:     numericKind(err),
			Expected: "unsigned integer",
			At:       position(s),
		}
	}

	*in = s[j:]

	return uint(n), nil
}

func (uintp[I]) Print(out uint) (I, error) {
	return I(strconv.FormatUint(uint64(out), 10)), nil
}

// digits returns the end of the run of ASCII digits in `s` starting
// at `from`.
func digits[I Chunk](s I, from int) int {
	j := from
	for j < len(s) && '0' <= s[j] && s[j] <= '9' {
		j++
	}

	return j
}

func numericKind(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
		return ErrOverflow
	}

	return ErrUnexpectedInput
}
