package httpreq

import (
	"testing"

	"github.com/janus-parse/janus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	for _, tt := range []struct {
		name    string
		parser  string
		request string
		fails   bool
	}{
		{
			name:    "exact match",
			parser:  "GET",
			request: "GET",
		},
		{
			name:    "lowercase request",
			parser:  "GET",
			request: "get",
		},
		{
			name:    "mixed case request",
			parser:  "GET",
			request: "Get",
		},
		{
			name:    "lowercase parser",
			parser:  "get",
			request: "GET",
		},
		{
			name:    "absent method defaults to GET",
			parser:  "GET",
			request: "",
		},
		{
			name:    "absent method is not POST",
			parser:  "POST",
			request: "",
			fails:   true,
		},
		{
			name:    "mismatch",
			parser:  "POST",
			request: "GET",
			fails:   true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			in := Request{Method: tt.request}

			_, err := Method(tt.parser).Parse(&in)
			if tt.fails {
				require.ErrorIs(t, err, janus.ErrUnexpectedInput)
				assert.Equal(t, Request{Method: tt.request}, in)
				return
			}

			require.NoError(t, err)
			assert.Empty(t, in.Method, "a matched method must be cleared")
		})
	}
}

func TestMethodPrint(t *testing.T) {
	printed, err := Method("post").Print(janus.Unit{})
	require.NoError(t, err)
	assert.Equal(t, Request{Method: "POST"}, printed)
}

func TestPath(t *testing.T) {
	p := Path(janus.Int[janus.Text]())

	in := Request{Path: []string{"42", "tail"}}
	got, err := p.Parse(&in)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, []string{"tail"}, in.Path)
}

func TestPathRequiresWholeSegment(t *testing.T) {
	p := Path(janus.Literal(janus.Text("epi")))

	in := Request{Path: []string{"episodes"}}
	_, err := p.Parse(&in)
	require.ErrorIs(t, err, janus.ErrUnconsumed)
	assert.Equal(t, Request{Path: []string{"episodes"}}, in, "a failed segment parse must leave the request unchanged")
}

func TestPathEmpty(t *testing.T) {
	p := Path(janus.Int[janus.Text]())

	in := Request{}
	_, err := p.Parse(&in)
	require.ErrorIs(t, err, janus.ErrEmptyInput)
	assert.Equal(t, Request{}, in)
}

func TestPathPrint(t *testing.T) {
	printed, err := Path(janus.Int[janus.Text]()).Print(42)
	require.NoError(t, err)
	assert.Equal(t, Request{Path: []string{"42"}}, printed)

	// Segments that print empty are dropped rather than producing a
	// phantom path element.
	printed, err = Path(janus.String).Print("")
	require.NoError(t, err)
	assert.Equal(t, Request{}, printed)
}

func TestPathEnd(t *testing.T) {
	in := Request{Query: []Field{{Name: "ga", Value: "1"}}}
	_, err := PathEnd.Parse(&in)
	require.NoError(t, err)

	in = Request{Path: []string{"episodes"}}
	_, err = PathEnd.Parse(&in)
	require.ErrorIs(t, err, janus.ErrUnexpectedInput)
	assert.Equal(t, Request{Path: []string{"episodes"}}, in)

	printed, err := PathEnd.Print(janus.Unit{})
	require.NoError(t, err)
	assert.True(t, printed.Empty())
}

func TestQuery(t *testing.T) {
	p := Query("limit", janus.Int[janus.Text]())

	in := Request{Query: []Field{
		{Name: "ga", Value: "1"},
		{Name: "limit", Value: "10"},
		{Name: "limit", Value: "20"},
	}}

	got, err := p.Parse(&in)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
	assert.Equal(t, []Field{
		{Name: "ga", Value: "1"},
		{Name: "limit", Value: "20"},
	}, in.Query, "only the first matching pair is removed")
}

func TestQueryMissing(t *testing.T) {
	p := Query("limit", janus.Int[janus.Text]())

	in := Request{Query: []Field{{Name: "offset", Value: "5"}}}
	_, err := p.Parse(&in)
	require.ErrorIs(t, err, janus.ErrEmptyInput)
	assert.Equal(t, Request{Query: []Field{{Name: "offset", Value: "5"}}}, in)
}

func TestQueryNameIsCaseSensitive(t *testing.T) {
	p := Query("limit", janus.Int[janus.Text]())

	in := Request{Query: []Field{{Name: "Limit", Value: "10"}}}
	_, err := p.Parse(&in)
	require.Error(t, err)
}

func TestQueryRequiresWholeValue(t *testing.T) {
	p := Query("limit", janus.Int[janus.Text]())

	in := Request{Query: []Field{{Name: "limit", Value: "10x"}}}
	_, err := p.Parse(&in)
	require.ErrorIs(t, err, janus.ErrUnconsumed)
	assert.Equal(t, Request{Query: []Field{{Name: "limit", Value: "10x"}}}, in)
}

func TestQueryPrint(t *testing.T) {
	printed, err := Query("q", janus.String).Print("point free")
	require.NoError(t, err)
	assert.Equal(t, Request{Query: []Field{{Name: "q", Value: "point free"}}}, printed)
}

func TestBody(t *testing.T) {
	p := Body(janus.Rest[janus.Bytes]())

	in := Request{Body: []byte("payload")}
	got, err := p.Parse(&in)
	require.NoError(t, err)
	assert.Equal(t, janus.Bytes("payload"), got)
	assert.Empty(t, in.Body, "a consumed body must be emptied")
}

func TestBodyRequiresWholeBuffer(t *testing.T) {
	p := Body(janus.Int[janus.Bytes]())

	in := Request{Body: []byte("42!")}
	_, err := p.Parse(&in)
	require.ErrorIs(t, err, janus.ErrUnconsumed)
	assert.Equal(t, Request{Body: []byte("42!")}, in)
}

type signUpPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func TestJSONBody(t *testing.T) {
	p := Body(JSON[signUpPayload]())

	in := Request{Body: []byte(`{"email":"a@b","password":"p"}`)}
	got, err := p.Parse(&in)
	require.NoError(t, err)
	assert.Equal(t, signUpPayload{Email: "a@b", Password: "p"}, got)
	assert.Empty(t, in.Body)

	printed, err := p.Print(signUpPayload{Email: "a@b", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, Request{Body: []byte(`{"email":"a@b","password":"p"}`)}, printed)
}

func TestJSONBodyMalformed(t *testing.T) {
	p := Body(JSON[signUpPayload]())

	in := Request{Body: []byte(`{"email":`)}
	_, err := p.Parse(&in)
	require.ErrorIs(t, err, janus.ErrUnexpectedInput)
	assert.Equal(t, Request{Body: []byte(`{"email":`)}, in)
}
