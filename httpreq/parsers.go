package httpreq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/janus-parse/janus"
)

// Each parser in this file projects the compound Request onto exactly
// one of its slices, delegates to an inner parser over that slice's
// element type, and on success clears the part it consumed. Failure
// leaves the whole Request unchanged.

// Method matches the request method against `name`, ignoring case.
// A request without a method counts as GET. On success the method is
// cleared so the slice cannot be consumed twice; because of the GET
// default, only non-GET methods become unmatchable afterwards.
//
// Printing produces a request carrying just the method, uppercased.
func Method(name string) janus.Printer[Request, janus.Unit] {
	return methodParser{name: name}
}

type methodParser struct {
	name string
}

func (m methodParser) Parse(in *Request) (janus.Unit, error) {
	method := in.Method
	if method == "" {
		method = "GET"
	}

	if !strings.EqualFold(method, m.name) {
		return janus.Unit{}, &janus.ParseError{
			Kind:     janus.ErrUnexpectedInput,
			Expected: fmt.Sprintf("method %s", strings.ToUpper(m.name)),
			At:       fmt.Sprintf("method %q", method),
		}
	}

	in.Method = ""

	return janus.Unit{}, nil
}

func (m methodParser) Print(janus.Unit) (Request, error) {
	return Request{Method: strings.ToUpper(m.name)}, nil
}

// Path applies `p` to the first path segment. The inner parser must
// consume the segment entirely; the segment is then removed. Printing
// produces a request whose path holds the printed segment, dropping
// it when it prints empty.
func Path[A any](p janus.Printer[janus.Text, A]) janus.Printer[Request, A] {
	return pathParser[A]{p: p}
}

type pathParser[A any] struct {
	p janus.Printer[janus.Text, A]
}

func (pp pathParser[A]) Parse(in *Request) (A, error) {
	var zero A

	if len(in.Path) == 0 {
		return zero, &janus.ParseError{
			Kind:     janus.ErrEmptyInput,
			Expected: "path segment",
		}
	}

	segment := janus.Text(in.Path[0])

	out, err := pp.p.Parse(&segment)
	if err != nil {
		return zero, err
	}

	if !segment.Empty() {
		return zero, &janus.ParseError{
			Kind:     janus.ErrUnconsumed,
			Expected: "entire path segment",
			At:       fmt.Sprintf("path %q", in.Path[0]),
		}
	}

	in.Path = in.Path[1:]

	return out, nil
}

func (pp pathParser[A]) Print(out A) (Request, error) {
	segment, err := pp.p.Print(out)
	if err != nil {
		return Request{}, err
	}

	if segment.Empty() {
		return Request{}, nil
	}

	return Request{Path: []string{string(segment)}}, nil
}

// PathEnd succeeds only when no path segments remain. It consumes
// nothing and prints the empty request.
var PathEnd janus.Printer[Request, janus.Unit] = pathEnd{}

type pathEnd struct{}

func (pathEnd) Parse(in *Request) (janus.Unit, error) {
	if len(in.Path) > 0 {
		return janus.Unit{}, &janus.ParseError{
			Kind:     janus.ErrUnexpectedInput,
			Expected: "end of path",
			At:       fmt.Sprintf("path %q", in.Path[0]),
		}
	}

	return janus.Unit{}, nil
}

func (pathEnd) Print(janus.Unit) (Request, error) {
	return Request{}, nil
}

// Query applies `p` to the value of the first query pair whose name
// equals `name`. Names match exactly, case included. The inner parser
// must consume the value entirely; only the matched pair is removed,
// later pairs with the same name stay. Printing produces a request
// carrying the single printed pair.
func Query[A any](name string, p janus.Printer[janus.Text, A]) janus.Printer[Request, A] {
	return queryParser[A]{name: name, p: p}
}

type queryParser[A any] struct {
	name string
	p    janus.Printer[janus.Text, A]
}

func (qp queryParser[A]) Parse(in *Request) (A, error) {
	var zero A

	for i, f := range in.Query {
		if f.Name != qp.name {
			continue
		}

		value := janus.Text(f.Value)

		out, err := qp.p.Parse(&value)
		if err != nil {
			return zero, err
		}

		if !value.Empty() {
			return zero, &janus.ParseError{
				Kind:     janus.ErrUnconsumed,
				Expected: "entire query value",
				At:       fmt.Sprintf("query %q", f.Value),
			}
		}

		in.Query = concat(in.Query[:i:i], in.Query[i+1:])

		return out, nil
	}

	return zero, &janus.ParseError{
		Kind:     janus.ErrEmptyInput,
		Expected: fmt.Sprintf("query parameter %q", qp.name),
	}
}

func (qp queryParser[A]) Print(out A) (Request, error) {
	value, err := qp.p.Print(out)
	if err != nil {
		return Request{}, err
	}

	return Request{Query: []Field{{Name: qp.name, Value: string(value)}}}, nil
}

// Body applies `p` to the request body. The inner parser must consume
// the buffer entirely; the body is then emptied. Printing produces a
// request carrying just the printed body.
func Body[A any](p janus.Printer[janus.Bytes, A]) janus.Printer[Request, A] {
	return bodyParser[A]{p: p}
}

type bodyParser[A any] struct {
	p janus.Printer[janus.Bytes, A]
}

func (bp bodyParser[A]) Parse(in *Request) (A, error) {
	var zero A

	body := janus.Bytes(in.Body)

	out, err := bp.p.Parse(&body)
	if err != nil {
		return zero, err
	}

	if !body.Empty() {
		return zero, &janus.ParseError{
			Kind:     janus.ErrUnconsumed,
			Expected: "entire body",
		}
	}

	in.Body = nil

	return out, nil
}

func (bp bodyParser[A]) Print(out A) (Request, error) {
	body, err := bp.p.Print(out)
	if err != nil {
		return Request{}, err
	}

	return Request{Body: body}, nil
}

// JSON decodes an entire byte buffer into T. Printing emits the
// canonical encoding/json marshalling of the value. Meant to be used
// under Body for endpoints that post structured payloads.
func JSON[T any]() janus.Printer[janus.Bytes, T] {
	return jsonParser[T]{}
}

type jsonParser[T any] struct{}

func (jsonParser[T]) Parse(in *janus.Bytes) (T, error) {
	var out T

	if err := json.Unmarshal(*in, &out); err != nil {
		var zero T
		return zero, &janus.ParseError{
			Kind:     janus.ErrUnexpectedInput,
			Expected: "JSON body",
			At:       string(*in),
		}
	}

	*in = nil

	return out, nil
}

func (jsonParser[T]) Print(out T) (janus.Bytes, error) {
	body, err := json.Marshal(out)
	if err != nil {
		return nil, &janus.PrintError{
			Kind:   janus.ErrUnprintableBranch,
			Reason: err.Error(),
		}
	}

	return janus.Bytes(body), nil
}
