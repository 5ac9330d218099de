package diff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDiff(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		want     Result
	}{
		{
			name:     "equal maps",
			actual:   map[string]int{"a": 1, "b": 2},
			expected: map[string]int{"a": 1, "b": 2},
			want:     nil,
		},
		{
			name:     "mismatched value",
			actual:   map[string]int{"a": 1, "b": 3},
			expected: map[string]int{"a": 1, "b": 2},
			want: Result{
				{Key: "b", Kind: Mismatch, Expected: 2, Actual: 3},
			},
		},
		{
			name:     "unexpected key",
			actual:   map[string]int{"a": 1, "z": 9},
			expected: map[string]int{"a": 1},
			want: Result{
				{Key: "z", Kind: Unexpected, Actual: 9},
			},
		},
		{
			name:     "key only in expected is not reported",
			actual:   map[string]int{"a": 1},
			expected: map[string]int{"a": 1, "gone": 5},
			want:     nil,
		},
		{
			name: "nested values use deep equality",
			actual: map[string]any{
				"list": []int{1, 2},
				"obj":  map[string]any{"x": 1},
			},
			expected: map[string]any{
				"list": []int{1, 2},
				"obj":  map[string]any{"x": 2},
			},
			want: Result{
				{
					Key:      "obj",
					Kind:     Mismatch,
					Expected: map[string]any{"x": 2},
					Actual:   map[string]any{"x": 1},
				},
			},
		},
		{
			name:     "differently typed maps",
			actual:   map[string]int{"a": 1, "b": 2},
			expected: map[any]int{"a": 1},
			want: Result{
				{Key: "b", Kind: Unexpected, Actual: 2},
			},
		},
		{
			name:     "numeric keys in numeric order",
			actual:   map[int]string{10: "x", 9: "y", 1: "z"},
			expected: map[int]string{},
			want: Result{
				{Key: 1, Kind: Unexpected, Actual: "z"},
				{Key: 9, Kind: Unexpected, Actual: "y"},
				{Key: 10, Kind: Unexpected, Actual: "x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashDiff(tt.actual, tt.expected)
			require.NoError(t, err)
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("HashDiff mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestHashDiff_NeverReportsKeysAbsentFromActual(t *testing.T) {
	actual := map[string]int{"a": 1, "b": 2}
	expected := map[string]int{"b": 3, "c": 4, "d": 5}

	got, err := HashDiff(actual, expected)
	require.NoError(t, err)

	for _, key := range got.Keys() {
		assert.Contains(t, actual, key)
	}
	for _, e := range got {
		assert.NotEqual(t, Missing, e.Kind)
	}

	entry, ok := got.Get("b")
	require.True(t, ok)
	assert.Equal(t, Mismatch, entry.Kind)

	entry, ok = got.Get("a")
	require.True(t, ok)
	assert.Equal(t, Unexpected, entry.Kind)

	_, ok = got.Get("c")
	assert.False(t, ok)
}

func TestHashDiff_NotMaps(t *testing.T) {
	tests := []struct {
		name             string
		actual, expected any
	}{
		{"actual slice", []int{1}, map[string]int{}},
		{"expected string", map[string]int{}, "x"},
		{"nil", nil, map[string]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashDiff(tt.actual, tt.expected)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotMap))
		})
	}
}

func TestResult_String(t *testing.T) {
	r := Result{
		{Key: "b", Kind: Mismatch, Expected: 2, Actual: 3},
		{Key: "z", Kind: Unexpected, Actual: "v"},
		{Key: "m", Kind: Missing, Expected: true},
	}

	assert.Equal(t,
		"\"b\": expected 2, got 3\n"+
			"\"z\": unexpected \"v\"\n"+
			"\"m\": missing, expected true",
		r.String(),
	)
	assert.Empty(t, Result(nil).String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "missing", Missing.String())
	assert.Equal(t, "unexpected", Unexpected.String())
	assert.Equal(t, "mismatch", Mismatch.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestIsMap(t *testing.T) {
	assert.True(t, IsMap(map[string]int{}))
	assert.True(t, IsMap(map[int]any(nil)))
	assert.False(t, IsMap(nil))
	assert.False(t, IsMap([]int{}))
	assert.False(t, IsMap("map"))
}
