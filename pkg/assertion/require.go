package assertion

import (
	"testing"

	"digital.vasic.assertions/pkg/mock"
)

// Required runs assertions against a testing.TB and stops the
// test at the first failure.
type Required struct {
	t testing.TB
	a *Assert
}

// Require binds a to t. A nil Assert is replaced with New().
func Require(t testing.TB, a *Assert) *Required {
	if a == nil {
		a = New()
	}
	return &Required{t: t, a: a}
}

// Check fails the test with err's message when err is not nil.
// It accepts the result of any assertion, including RaisesType.
func (r *Required) Check(err error) {
	r.t.Helper()
	if err != nil {
		r.t.Fatal(err.Error())
	}
}

// Equal requires actual to equal expected.
func (r *Required) Equal(actual, expected any, msgAndArgs ...any) {
	r.t.Helper()
	r.Check(r.a.Equal(actual, expected, msgAndArgs...))
}

// Empty requires collection to have no elements.
func (r *Required) Empty(collection any, msgAndArgs ...any) {
	r.t.Helper()
	r.Check(r.a.Empty(collection, msgAndArgs...))
}

// Includes requires collection to contain element.
func (r *Required) Includes(collection, element any, msgAndArgs ...any) {
	r.t.Helper()
	r.Check(r.a.Includes(collection, element, msgAndArgs...))
}

// IncludesNo requires collection not to contain element.
func (r *Required) IncludesNo(collection, element any, msgAndArgs ...any) {
	r.t.Helper()
	r.Check(r.a.IncludesNo(collection, element, msgAndArgs...))
}

// Raises requires fn to fail with target.
func (r *Required) Raises(target error, fn func() error, msgAndArgs ...any) {
	r.t.Helper()
	r.Check(r.a.Raises(target, fn, msgAndArgs...))
}

// WasCalled requires method to have been called.
func (r *Required) WasCalled(log mock.CallLog, method string, msgAndArgs ...any) {
	r.t.Helper()
	r.Check(r.a.WasCalled(log, method, msgAndArgs...))
}

// WasNotCalled requires method never to have been called.
func (r *Required) WasNotCalled(log mock.CallLog, method string, msgAndArgs ...any) {
	r.t.Helper()
	r.Check(r.a.WasNotCalled(log, method, msgAndArgs...))
}

// ReceivedCall requires a matching call of method.
func (r *Required) ReceivedCall(log mock.CallLog, method string, args any, rest ...any) {
	r.t.Helper()
	r.Check(r.a.ReceivedCall(log, method, args, rest...))
}
