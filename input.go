package janus

// The input to a parse is a mutable cursor value owned by the caller
// for the duration of the call. Combinators require capabilities of
// their inputs rather than concrete types; the three capabilities
// below are orthogonal and a compound input may satisfy any subset.

// Consumable inputs have a notion of emptiness. Parsers detach
// prefixes from them as they consume input.
type Consumable interface {
	Empty() bool
}

// Appendable inputs merge by concatenation, self first. The zero
// value of an Appendable input type must be its identity; printers
// rely on this to emit "nothing" for the parts of an output that did
// not constrain the input.
type Appendable[I any] interface {
	Append(other I) I
}

// Sliceable inputs expose their own sub-ranges as the same type.
type Sliceable[I any] interface {
	Len() int
	Slice(from, to int) I
}

// Chunk constrains the flat primitive inputs: anything whose
// underlying representation is a string or a byte slice. Leaf
// parsers generic over Chunk work on both without conversion.
type Chunk interface {
	~string | ~[]byte
}

// Text is a primitive text-slice input.
type Text string

// Empty reports whether no input remains.
func (t Text) Empty() bool {
	return len(t) == 0
}

// Append concatenates two text inputs. The empty Text is the identity.
func (t Text) Append(other Text) Text {
	return t + other
}

// Len returns the length of the input in bytes.
func (t Text) Len() int {
	return len(t)
}

// Slice returns the sub-range [from, to) of the input.
func (t Text) Slice(from, to int) Text {
	return t[from:to]
}

// Bytes is a primitive byte-buffer input.
type Bytes []byte

// Empty reports whether no input remains.
func (b Bytes) Empty() bool {
	return len(b) == 0
}

// Append concatenates two byte inputs. When both are non-empty the
// result is a fresh buffer; when either is empty the other is
// returned as is. An empty Bytes is the identity.
func (b Bytes) Append(other Bytes) Bytes {
	if len(b) == 0 {
		return other
	}

	if len(other) == 0 {
		return b
	}

	merged := make(Bytes, 0, len(b)+len(other))
	merged = append(merged, b...)
	return append(merged, other...)
}

// Len returns the length of the input in bytes.
func (b Bytes) Len() int {
	return len(b)
}

// Slice returns the sub-range [from, to) of the input. The result
// shares storage with the receiver; parsers must not write through it.
func (b Bytes) Slice(from, to int) Bytes {
	return b[from:to:to]
}
