package janus_test

import (
	"testing"

	jn "github.com/janus-parse/janus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(lit string, value int) jn.Printer[jn.Text, int] {
	return jn.Map(jn.Literal(jn.Text(lit)), jn.Iso[jn.Unit, int]{
		Apply: func(jn.Unit) (int, error) {
			return value, nil
		},
		Unapply: func(int) (jn.Unit, error) {
			return jn.Unit{}, nil
		},
	})
}

func TestOr(t *testing.T) {
	p := jn.Or(tagged("a", 1), tagged("b", 2))

	for _, tt := range []struct {
		name      string
		input     string
		expected  int
		remaining string
		fails     bool
	}{
		{
			name:      "first branch",
			input:     "a!",
			expected:  1,
			remaining: "!",
		},
		{
			name:      "second branch",
			input:     "b!",
			expected:  2,
			remaining: "!",
		},
		{
			name:      "neither branch",
			input:     "c!",
			remaining: "c!",
			fails:     true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			in := jn.Text(tt.input)

			got, err := p.Parse(&in)
			if tt.fails {
				require.Error(t, err)
				assert.Equal(t, jn.Text(tt.remaining), in, "failed alternation must restore the input")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, jn.Text(tt.remaining), in)
		})
	}
}

// The tagged branches above discard their output when printing, so
// the first branch happily prints "a" for any value. The round-trip
// check is what rejects that print and routes the value to the branch
// that actually reproduces it.
func TestOrPrintRoundTrips(t *testing.T) {
	p := jn.Or(tagged("a", 1), tagged("b", 2))

	printed, err := p.Print(1)
	require.NoError(t, err)
	assert.Equal(t, jn.Text("a"), printed)

	printed, err = p.Print(2)
	require.NoError(t, err)
	assert.Equal(t, jn.Text("b"), printed)

	_, err = p.Print(3)
	require.ErrorIs(t, err, jn.ErrRoundTripFailed, "no branch reproduces 3")
}

// Disjoint alternatives commute.
func TestOrCommutesWhenDisjoint(t *testing.T) {
	pq := jn.Or(tagged("a", 1), tagged("b", 2))
	qp := jn.Or(tagged("b", 2), tagged("a", 1))

	for _, input := range []string{"a", "b", "c", ""} {
		left := jn.Text(input)
		right := jn.Text(input)

		lval, lerr := pq.Parse(&left)
		rval, rerr := qp.Parse(&right)

		assert.Equal(t, lval, rval, "input %q", input)
		assert.Equal(t, lerr == nil, rerr == nil, "input %q", input)
		assert.Equal(t, left, right, "input %q", input)
	}
}

func TestChoice(t *testing.T) {
	p := jn.Choice("tag", tagged("a", 1), tagged("b", 2), tagged("c", 3))

	in := jn.Text("c")
	got, err := p.Parse(&in)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	in = jn.Text("d")
	_, err = p.Parse(&in)
	require.Error(t, err)
	assert.ErrorContains(t, err, "expected tag")
	assert.Equal(t, jn.Text("d"), in)
}

func TestChoicePrint(t *testing.T) {
	p := jn.Choice("tag", tagged("a", 1), tagged("b", 2), tagged("c", 3))

	printed, err := p.Print(3)
	require.NoError(t, err)
	assert.Equal(t, jn.Text("c"), printed)

	_, err = p.Print(9)
	require.ErrorIs(t, err, jn.ErrRoundTripFailed)
}

// An unprintable branch is skipped rather than sinking the whole
// alternation.
func TestOrPrintSkipsUnprintableBranch(t *testing.T) {
	oneWay := jn.Lift(func(jn.Unit) (int, error) {
		return 1, nil
	}, jn.Literal(jn.Text("a")))

	p := jn.Or(oneWay, tagged("b", 1))

	in := jn.Text("a")
	got, err := p.Parse(&in)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	printed, err := p.Print(1)
	require.NoError(t, err)
	assert.Equal(t, jn.Text("b"), printed)
}
