package assertion

import (
	"fmt"
	"reflect"

	"digital.vasic.assertions/pkg/mock"
)

// ReceivedCall checks that method was called with exactly the
// given arguments. rest holds the keyword arguments followed by
// the custom message.
//
// The argument slots are reshaped before matching:
//
//   - a missing or nil kwargs slot means no keyword arguments
//   - a string-keyed map in the args slot is the keyword
//     arguments, with no positional arguments, and takes
//     precedence over a map in the kwargs slot
//   - a string in the args slot means no positional arguments,
//     and is the custom message unless one follows the kwargs slot
//   - a string in the kwargs slot is the custom message, with the
//     values after it as format arguments; it replaces a string
//     from the args slot
//
// A call whose only argument is a string or a map therefore
// cannot be asserted this way; use ReceivedCallExact.
func (a *Assert) ReceivedCall(
	log mock.CallLog,
	method string,
	args any,
	rest ...any,
) error {
	want, msgAndArgs, err := normalizeCall(args, rest)
	if err != nil {
		return a.fail("received_call", err.Error(), msgAndArgs...)
	}
	return a.ReceivedCallExact(log, method, want, msgAndArgs...)
}

// ReceivedCallExact checks that want is among the recorded calls
// of method.
func (a *Assert) ReceivedCallExact(
	log mock.CallLog,
	method string,
	want mock.Call,
	msgAndArgs ...any,
) error {
	calls := log.MethodCalls(method)
	if mock.Contains(calls, want) {
		return a.pass("received_call")
	}

	if want.Args == nil {
		want.Args = []any{}
	}
	if want.Kwargs == nil {
		want.Kwargs = map[string]any{}
	}

	return a.fail("received_call", fmt.Sprintf(
		"Expected calls:\n%s\n\nto include:\n\n%s",
		a.render(calls), a.render(want),
	), msgAndArgs...)
}

// normalizeCall applies the ReceivedCall reshaping rules in
// order and returns the call to look for and the custom message.
func normalizeCall(args any, rest []any) (mock.Call, []any, error) {
	call := mock.Call{Args: []any{}, Kwargs: map[string]any{}}

	var kwargs any
	var explicit []any
	if len(rest) > 0 {
		kwargs = rest[0]
		explicit = rest[1:]
	}
	msgAndArgs := explicit

	argsAreKwargs := false
	if kw, ok := mock.AsKwargs(args); ok {
		call.Kwargs = kw
		argsAreKwargs = true
	} else if s, ok := args.(string); ok {
		if len(explicit) == 0 {
			msgAndArgs = []any{s}
		}
	} else if args != nil {
		call.Args = positional(args)
	}

	switch v := kwargs.(type) {
	case nil:
	case string:
		msgAndArgs = append([]any{v}, explicit...)
	default:
		kw, ok := mock.AsKwargs(v)
		if !ok {
			return call, msgAndArgs, fmt.Errorf(
				"keyword arguments must be a string-keyed map, got %T", v,
			)
		}
		if !argsAreKwargs {
			call.Kwargs = kw
		}
	}

	return call, msgAndArgs, nil
}

// positional converts a slice or array of any element type to
// []any. Any other value is a single positional argument.
func positional(args any) []any {
	if s, ok := args.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(args)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{args}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
