// Package diff computes key-level differences between two
// mapping values for equality failure reports.
package diff

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/stretchr/testify/assert"
)

// ErrNotMap is returned when an operand of HashDiff is not a map.
var ErrNotMap = errors.New("value is not a map")

// Kind classifies a discrepancy at one key.
type Kind int

const (
	// Missing marks a key present only in the expected map. The
	// walk in HashDiff never produces it; it exists so callers
	// can describe such keys themselves.
	Missing Kind = iota + 1
	// Unexpected marks a key present only in the actual map.
	Unexpected
	// Mismatch marks a key present in both maps with unequal
	// values.
	Mismatch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Unexpected:
		return "unexpected"
	case Mismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Entry is one discrepancy between two maps.
type Entry struct {
	Key      any
	Kind     Kind
	Expected any
	Actual   any
}

// Result is the ordered list of discrepancies found by HashDiff.
type Result []Entry

// Get returns the entry for key, if any.
func (r Result) Get(key any) (Entry, bool) {
	for _, e := range r {
		if assert.ObjectsAreEqual(e.Key, key) {
			return e, true
		}
	}
	return Entry{}, false
}

// Keys returns the keys of all entries in order.
func (r Result) Keys() []any {
	keys := make([]any, len(r))
	for i, e := range r {
		keys[i] = e.Key
	}
	return keys
}

// Render writes one line per entry using render for keys and
// values.
func (r Result) Render(render func(any) string) string {
	var b strings.Builder
	for _, e := range r {
		switch e.Kind {
		case Mismatch:
			fmt.Fprintf(&b, "%s: expected %s, got %s\n",
				render(e.Key), render(e.Expected), render(e.Actual))
		case Unexpected:
			fmt.Fprintf(&b, "%s: unexpected %s\n",
				render(e.Key), render(e.Actual))
		case Missing:
			fmt.Fprintf(&b, "%s: missing, expected %s\n",
				render(e.Key), render(e.Expected))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// String renders the result with fmt's %#v for keys and values.
func (r Result) String() string {
	return r.Render(func(v any) string { return fmt.Sprintf("%#v", v) })
}

// IsMap reports whether v is a map value.
func IsMap(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

// HashDiff compares the maps actual and expected key by key. Only
// the keys of actual are visited: a key also in expected with an
// unequal value is a Mismatch, a key absent from expected is
// Unexpected. Keys that exist only in expected are not reported.
// Keys are visited in sorted order since Go maps carry no
// insertion order.
func HashDiff(actual, expected any) (Result, error) {
	if !IsMap(actual) || !IsMap(expected) {
		return nil, fmt.Errorf("hash diff of %T and %T: %w",
			actual, expected, ErrNotMap)
	}

	act := reflect.ValueOf(actual)
	exp := reflect.ValueOf(expected)

	var result Result
	for _, key := range sortedKeys(act) {
		actVal := act.MapIndex(key).Interface()

		expVal, ok := lookup(exp, key)
		if !ok {
			result = append(result, Entry{
				Key:    key.Interface(),
				Kind:   Unexpected,
				Actual: actVal,
			})
			continue
		}

		if !assert.ObjectsAreEqual(actVal, expVal) {
			result = append(result, Entry{
				Key:      key.Interface(),
				Kind:     Mismatch,
				Expected: expVal,
				Actual:   actVal,
			})
		}
	}

	return result, nil
}

// lookup finds key in m. Keys of a different but convertible
// type (e.g. map[string]int against map[any]int) are matched by
// equality.
func lookup(m reflect.Value, key reflect.Value) (any, bool) {
	kt := m.Type().Key()
	if key.Type().AssignableTo(kt) {
		v := m.MapIndex(key)
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	}

	iter := m.MapRange()
	for iter.Next() {
		if assert.ObjectsAreEqual(iter.Key().Interface(), key.Interface()) {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}

// sortedKeys orders map keys so reports are stable: numbers
// numerically, strings lexically, anything else by its %#v text.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})
	return keys
}

func lessKey(a, b reflect.Value) bool {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if !a.IsValid() || !b.IsValid() {
		return !a.IsValid() && b.IsValid()
	}

	switch {
	case a.CanInt() && b.CanInt():
		return a.Int() < b.Int()
	case a.CanUint() && b.CanUint():
		return a.Uint() < b.Uint()
	case a.CanFloat() && b.CanFloat():
		return a.Float() < b.Float()
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return a.String() < b.String()
	}
	return fmt.Sprintf("%#v", a.Interface()) <
		fmt.Sprintf("%#v", b.Interface())
}
