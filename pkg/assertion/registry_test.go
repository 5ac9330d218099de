package assertion

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/metrics"
)

func TestNewRegistry_RegistersBuiltins(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t,
		[]string{"empty", "equal", "includes", "includes_no"},
		r.Types(),
	)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(New())

	err := r.Register("positive", func(a *Assert, def Definition, actual any) error {
		if n, ok := actual.(int); ok && n > 0 {
			return Ok()
		}
		return errors.New("not positive")
	})
	require.NoError(t, err)
	assert.True(t, r.HasEvaluator("positive"))

	assert.True(t, r.Evaluate(Definition{Type: "positive"}, 3).Passed)
	assert.False(t, r.Evaluate(Definition{Type: "positive"}, -3).Passed)
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	r := NewRegistry(nil)
	err := r.Register("equal", func(*Assert, Definition, any) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_Evaluate_UnknownType(t *testing.T) {
	res := NewRegistry(nil).Evaluate(Definition{Type: "nonexistent", Target: "x"}, "v")
	assert.False(t, res.Passed)
	assert.Contains(t, res.Message, "unknown assertion type")
}

func TestRegistry_Evaluate_MatchesDirectCalls(t *testing.T) {
	a := New()
	r := NewRegistry(a)

	tests := []struct {
		def    Definition
		actual any
		direct error
	}{
		{Definition{Type: "equal", Value: 2}, 2, a.Equal(2, 2)},
		{Definition{Type: "equal", Value: 2, Message: "ctx"}, 3, a.Equal(3, 2, "ctx")},
		{Definition{Type: "empty"}, []int{}, a.Empty([]int{})},
		{Definition{Type: "empty"}, "x", a.Empty("x")},
		{Definition{Type: "includes", Value: 2}, []int{1, 2}, a.Includes([]int{1, 2}, 2)},
		{Definition{Type: "includes_no", Value: 2}, []int{1, 2}, a.IncludesNo([]int{1, 2}, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.def.Type, func(t *testing.T) {
			res := r.Evaluate(tt.def, tt.actual)
			assert.Equal(t, tt.direct == nil, res.Passed)
			if tt.direct != nil {
				assert.Equal(t, tt.direct.Error(), res.Message)
			} else {
				assert.Equal(t, "ok", res.Message)
			}
			assert.Equal(t, tt.actual, res.Actual)
			assert.Equal(t, tt.def.Value, res.Expected)
		})
	}
}

func TestRegistry_EvaluateAll(t *testing.T) {
	r := NewRegistry(nil)

	results := r.EvaluateAll(
		[]Definition{
			{Type: "includes", Target: "greeting", Value: "hello"},
			{Type: "empty", Target: "errors"},
			{Type: "equal", Target: "missing", Value: 1},
		},
		map[string]any{
			"greeting": "hello world",
			"errors":   []string{},
		},
	)

	require.Len(t, results, 3)
	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
	assert.False(t, results[2].Passed)
	assert.Contains(t, results[2].Message, "target not found")
}

func TestRegistry_AllPass(t *testing.T) {
	r := NewRegistry(nil)
	values := map[string]any{"a": []int{1, 2}, "b": "text"}

	err := r.AllPass([]Definition{
		{Type: "includes", Target: "a", Value: 1},
		{Type: "includes", Target: "a", Value: 2},
	}, values)
	assert.NoError(t, err)

	err = r.AllPass([]Definition{
		{Type: "includes", Target: "a", Value: 1},
		{Type: "empty", Target: "a"},
		{Type: "empty", Target: "b"},
	}, values, "checking %s", "values")
	require.Error(t, err)
	assert.True(t, IsFailure(err))

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "2 of 3 assertions failed:\n\n"))
	assert.Contains(t, msg, "empty on \"a\":\nExpected:")
	assert.Contains(t, msg, "empty on \"b\":\nExpected:")
	assert.Equal(t, 2, strings.Count(msg, Separator), msg)
	assert.True(t, strings.HasSuffix(msg, "\n\nchecking values\n"+Separator))
}

func TestRegistry_AllPass_MissingTarget(t *testing.T) {
	err := NewRegistry(nil).AllPass([]Definition{
		{Type: "empty", Target: "absent"},
	}, map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty on \"absent\":\ntarget not found: absent")
}

func TestRegistry_AnyPass(t *testing.T) {
	r := NewRegistry(nil)
	values := map[string]any{"a": []int{1, 2}}

	err := r.AnyPass([]Definition{
		{Type: "empty", Target: "a"},
		{Type: "includes", Target: "a", Value: 2},
	}, values)
	assert.NoError(t, err)

	err = r.AnyPass([]Definition{
		{Type: "empty", Target: "a"},
		{Type: "includes", Target: "a", Value: 3},
	}, values)
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "none of 2 assertions passed:\n\n"))
	assert.Contains(t, msg, "includes on \"a\":\nExpected:")
	assert.Equal(t, 2, strings.Count(msg, Separator), msg)
}

func TestRegistry_CompositesAreCounted(t *testing.T) {
	counter := metrics.NewCounter()
	r := NewRegistry(New(WithLogger(counter)))
	values := map[string]any{"a": []int{1}}

	_ = r.AllPass([]Definition{{Type: "empty", Target: "a"}}, values)
	_ = r.AnyPass([]Definition{{Type: "includes", Target: "a", Value: 1}}, values)

	assert.Equal(t, 1, counter.Failed("all_pass"))
	assert.Equal(t, 1, counter.Passed("any_pass"))
}
