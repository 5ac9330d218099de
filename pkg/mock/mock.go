// Package mock records method calls on test doubles and exposes
// them to assertions through the CallLog query interface.
package mock

import (
	"reflect"
	"sync"

	"github.com/stretchr/testify/assert"
)

// CallLog is the query side of a mock collaborator.
type CallLog interface {
	// MethodCalls returns the recorded calls of the named
	// method in invocation order. A method that was never
	// called yields an empty slice, never an error.
	MethodCalls(method string) []Call
}

// Call is one observed invocation: its positional and keyword
// arguments.
type Call struct {
	Args   []any          `json:"args" yaml:"args"`
	Kwargs map[string]any `json:"kwargs" yaml:"kwargs"`
}

// NewCall builds a Call from positional arguments.
func NewCall(args ...any) Call {
	return Call{Args: args, Kwargs: map[string]any{}}
}

// WithKwargs returns a copy of c with the given keyword
// arguments.
func (c Call) WithKwargs(kwargs map[string]any) Call {
	c.Kwargs = kwargs
	return c
}

// Equal reports whether two calls carry the same arguments. Nil
// and empty argument lists are interchangeable.
func (c Call) Equal(other Call) bool {
	if len(c.Args) != len(other.Args) ||
		len(c.Kwargs) != len(other.Kwargs) {
		return false
	}
	for i := range c.Args {
		if !assert.ObjectsAreEqual(c.Args[i], other.Args[i]) {
			return false
		}
	}
	for k, v := range c.Kwargs {
		ov, ok := other.Kwargs[k]
		if !ok || !assert.ObjectsAreEqual(v, ov) {
			return false
		}
	}
	return true
}

// Contains reports whether want is among calls.
func Contains(calls []Call, want Call) bool {
	for _, c := range calls {
		if c.Equal(want) {
			return true
		}
	}
	return false
}

// Recorder is a CallLog that test doubles append to. It is safe
// for concurrent use.
type Recorder struct {
	mu    sync.RWMutex
	calls map[string][]Call
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{calls: make(map[string][]Call)}
}

// Record appends a call of method. Nil kwargs are stored as an
// empty map.
func (r *Recorder) Record(
	method string,
	args []any,
	kwargs map[string]any,
) {
	if kwargs == nil {
		kwargs = map[string]any{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.calls == nil {
		r.calls = make(map[string][]Call)
	}
	r.calls[method] = append(r.calls[method], Call{
		Args:   append([]any(nil), args...),
		Kwargs: kwargs,
	})
}

// MethodCalls returns a snapshot of the calls of method.
func (r *Recorder) MethodCalls(method string) []Call {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calls := r.calls[method]
	out := make([]Call, len(calls))
	copy(out, calls)
	return out
}

// Methods returns the number of distinct methods called.
func (r *Recorder) Methods() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.calls)
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = make(map[string][]Call)
}

// AsKwargs converts a string-keyed map of any value type into
// keyword arguments. It reports false for anything else.
func AsKwargs(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
