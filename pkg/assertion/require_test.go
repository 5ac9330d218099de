package assertion

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/mock"
)

// fakeT records fatal calls instead of stopping the goroutine.
type fakeT struct {
	testing.TB
	helpers int
	fatals  []string
}

func (f *fakeT) Helper() { f.helpers++ }

func (f *fakeT) Fatal(args ...any) {
	f.fatals = append(f.fatals, fmt.Sprint(args...))
}

func TestRequire_PassingAssertionsDoNotFail(t *testing.T) {
	ft := &fakeT{}
	r := Require(ft, nil)
	rec := mock.NewRecorder()
	rec.Record("run", []any{1}, nil)

	r.Equal(1, 1)
	r.Empty(nil)
	r.Includes([]int{1}, 1)
	r.IncludesNo([]int{1}, 2)
	r.Raises(errTimeout, func() error { return errTimeout })
	r.WasCalled(rec, "run")
	r.WasNotCalled(rec, "stop")
	r.ReceivedCall(rec, "run", []any{1})
	r.Check(nil)

	assert.Empty(t, ft.fatals)
	assert.Positive(t, ft.helpers)
}

func TestRequire_FailuresCallFatal(t *testing.T) {
	ft := &fakeT{}
	r := Require(ft, New())
	rec := mock.NewRecorder()

	r.Equal(1, 2, "numbers")
	r.Empty([]int{1})
	r.Includes([]int{1}, 3)
	r.IncludesNo([]int{1}, 1)
	r.Raises(errTimeout, func() error { return nil })
	r.WasCalled(rec, "run")
	rec.Record("stop", nil, nil)
	r.WasNotCalled(rec, "stop")
	r.ReceivedCall(rec, "stop", []any{1})
	r.Check(RaisesType[*codeError](New(), func() error { return nil }))

	require.Len(t, ft.fatals, 9)
	assert.Contains(t, ft.fatals[0], "did not equal")
	assert.Contains(t, ft.fatals[0], "numbers")
	for _, msg := range ft.fatals {
		assert.Contains(t, msg, Separator)
	}
}

func TestRequire_WithRealTest(t *testing.T) {
	r := Require(t, New())
	r.Equal(map[string]int{"a": 1}, map[string]int{"a": 1})
	r.Includes("assertion core", "core")
}
