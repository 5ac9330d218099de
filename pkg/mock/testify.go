package mock

import (
	testifymock "github.com/stretchr/testify/mock"
)

// testifyLog reads calls from a testify mock.
type testifyLog struct {
	m *testifymock.Mock
}

// FromTestify exposes the calls recorded by a testify Mock as a
// CallLog. A trailing string-keyed map argument is read as the
// keyword arguments of the call.
//
// MethodCalls reads m.Calls without holding the mock's internal
// lock, so it must not run while other goroutines are still
// calling the mock. Query it once the code under test has
// returned. The returned calls are copies.
func FromTestify(m *testifymock.Mock) CallLog {
	return testifyLog{m: m}
}

// MethodCalls returns the calls of method made on the mock.
func (l testifyLog) MethodCalls(method string) []Call {
	out := []Call{}
	for _, c := range l.m.Calls {
		if c.Method != method {
			continue
		}

		args := []any(c.Arguments)
		kwargs := map[string]any{}
		if n := len(args); n > 0 {
			if kw, ok := AsKwargs(args[n-1]); ok {
				kwargs = kw
				args = args[:n-1]
			}
		}
		out = append(out, Call{
			Args:   append([]any{}, args...),
			Kwargs: kwargs,
		})
	}
	return out
}
