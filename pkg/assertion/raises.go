package assertion

import (
	"errors"
	"fmt"
	"reflect"
)

// Raises runs fn and checks that it fails with an error matching
// target under errors.Is, either by returning it or by panicking
// with it. A Failure produced by an assertion inside fn is
// returned unchanged.
func (a *Assert) Raises(target error, fn func() error, msgAndArgs ...any) error {
	return a.raises(describeTarget(target), func(err error) bool {
		return errors.Is(err, target)
	}, fn, msgAndArgs...)
}

// RaisesType is Raises for an error type: fn must fail with an
// error assignable to T anywhere in its chain.
func RaisesType[T error](a *Assert, fn func() error, msgAndArgs ...any) error {
	kind := reflect.TypeOf((*T)(nil)).Elem().String()
	return a.raises(kind, func(err error) bool {
		var target T
		return errors.As(err, &target)
	}, fn, msgAndArgs...)
}

func (a *Assert) raises(
	kind string,
	matches func(error) bool,
	fn func() error,
	msgAndArgs ...any,
) error {
	raised, panicValue, panicked := invoke(fn)

	if panicked {
		if err, ok := panicValue.(error); ok {
			raised = err
		} else {
			return a.fail("raises", fmt.Sprintf(
				"Expected to raise %s, but raised: panic(%v) (%T)",
				kind, panicValue, panicValue,
			), msgAndArgs...)
		}
	}

	if raised == nil {
		return a.fail("raises", fmt.Sprintf(
			"Expected to raise %s, but nothing was raised", kind,
		), msgAndArgs...)
	}

	if matches(raised) {
		return a.pass("raises")
	}

	var failure *Failure
	if errors.As(raised, &failure) {
		return raised
	}

	return a.fail("raises", fmt.Sprintf(
		"Expected to raise %s, but raised: %v (%T)", kind, raised, raised,
	), msgAndArgs...)
}

// invoke calls fn, converting a panic into its recovered value.
func invoke(fn func() error) (err error, panicValue any, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			err = nil
			panicValue = r
			panicked = true
		}
	}()
	return fn(), nil, false
}

func describeTarget(target error) string {
	if target == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v (%T)", target, target)
}
