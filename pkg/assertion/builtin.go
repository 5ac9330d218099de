package assertion

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/diff"
	"digital.vasic.assertions/pkg/mock"
)

// Equal checks that actual equals expected. When both are maps
// the failure includes a key-level diff; multi-line renderings
// of other values get a unified text diff.
func (a *Assert) Equal(actual, expected any, msgAndArgs ...any) error {
	if assert.ObjectsAreEqual(actual, expected) {
		return a.pass("equal")
	}

	act, exp := a.render(actual), a.render(expected)

	var b strings.Builder
	fmt.Fprintf(&b, "actual:\n%s\n\ndid not equal\n\nexpected:\n%s", act, exp)

	if diff.IsMap(actual) && diff.IsMap(expected) {
		if d, err := diff.HashDiff(actual, expected); err == nil && len(d) > 0 {
			fmt.Fprintf(&b, "\n\ndiff:\n%s", d.Render(a.render))
		}
	} else if td := textDiff(exp, act); td != "" {
		fmt.Fprintf(&b, "\n\ntext diff:\n%s", td)
	}

	return a.fail("equal", b.String(), msgAndArgs...)
}

func textDiff(expected, actual string) string {
	if !strings.Contains(expected, "\n") && !strings.Contains(actual, "\n") {
		return ""
	}
	d, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return strings.TrimRight(d, "\n")
}

// Empty checks that collection has no elements. Strings, slices,
// arrays, maps and channels are collections; nil is empty.
func (a *Assert) Empty(collection any, msgAndArgs ...any) error {
	n, ok := length(collection)
	if ok && n == 0 {
		return a.pass("empty")
	}

	base := fmt.Sprintf("Expected:\n%s\n\nto be empty", a.render(collection))
	if !ok {
		base += fmt.Sprintf(", but %T has no length", collection)
	}
	return a.fail("empty", base, msgAndArgs...)
}

// Includes checks that collection contains element: a substring
// of a string, a key of a map or an element of a slice or array.
func (a *Assert) Includes(collection, element any, msgAndArgs ...any) error {
	found, ok := contains(collection, element)
	if ok && found {
		return a.pass("includes")
	}
	return a.fail("includes",
		a.membershipMessage(collection, element, "to include", ok),
		msgAndArgs...)
}

// IncludesNo checks that collection does not contain element.
func (a *Assert) IncludesNo(collection, element any, msgAndArgs ...any) error {
	found, ok := contains(collection, element)
	if ok && !found {
		return a.pass("includes_no")
	}
	return a.fail("includes_no",
		a.membershipMessage(collection, element, "to not include", ok),
		msgAndArgs...)
}

func (a *Assert) membershipMessage(collection, element any, verb string, ok bool) string {
	base := fmt.Sprintf("Expected:\n%s\n\n%s:\n\n%s",
		a.render(collection), verb, a.render(element))
	if !ok {
		base += fmt.Sprintf("\n\nbut %T does not support membership of %T",
			collection, element)
	}
	return base
}

// WasCalled checks that method was called on the mock at least
// once.
func (a *Assert) WasCalled(log mock.CallLog, method string, msgAndArgs ...any) error {
	if len(log.MethodCalls(method)) > 0 {
		return a.pass("was_called")
	}
	return a.fail("was_called",
		fmt.Sprintf("Expected method call %q, but it was not called", method),
		msgAndArgs...)
}

// WasNotCalled checks that method was never called on the mock.
func (a *Assert) WasNotCalled(log mock.CallLog, method string, msgAndArgs ...any) error {
	if len(log.MethodCalls(method)) == 0 {
		return a.pass("was_not_called")
	}
	return a.fail("was_not_called",
		fmt.Sprintf("Expected not method call %q, but it was called", method),
		msgAndArgs...)
}

// length returns the number of elements of a collection. Pointers
// to collections are followed.
func length(v any) (int, bool) {
	if v == nil {
		return 0, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return 0, true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array,
		reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}

// contains reports whether element is in collection, and whether
// collection supports membership at all.
func contains(collection, element any) (found, ok bool) {
	if collection == nil {
		return false, false
	}
	cv := reflect.ValueOf(collection)
	if cv.Kind() == reflect.Ptr {
		if cv.IsNil() {
			switch cv.Type().Elem().Kind() {
			case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
				return false, true
			}
			return false, false
		}
		cv = cv.Elem()
	}

	switch cv.Kind() {
	case reflect.String:
		s, isString := element.(string)
		if !isString {
			return false, false
		}
		return strings.Contains(cv.String(), s), true
	case reflect.Map:
		iter := cv.MapRange()
		for iter.Next() {
			if assert.ObjectsAreEqual(iter.Key().Interface(), element) {
				return true, true
			}
		}
		return false, true
	case reflect.Slice, reflect.Array:
		for i := 0; i < cv.Len(); i++ {
			if assert.ObjectsAreEqual(cv.Index(i).Interface(), element) {
				return true, true
			}
		}
		return false, true
	}
	return false, false
}
