package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christux/bambo/framework/container"
)

func TestPredicates(t *testing.T) {
	var nilPtr *low
	var nilMap map[string]int

	tests := []struct {
		name string
		pred func(any) bool
		yes  []any
		no   []any
	}{
		{"IsString", container.IsString, []any{"", "x"}, []any{nil, 1, []byte("x")}},
		{"IsObject", container.IsObject, []any{&low{}, low{}, map[string]int{}}, []any{nil, nilPtr, nilMap, []int{}, "s", 3, func() {}}},
		{"IsSequence", container.IsSequence, []any{[]int{}, [2]string{}, []any{"a"}}, []any{nil, "abc", map[int]int{}}},
		{"IsFunction", container.IsFunction, []any{func() {}, newLow}, []any{nil, (func())(nil), "func"}},
		{"IsBoolean", container.IsBoolean, []any{true, false}, []any{nil, 0, "true"}},
		{"IsNumber", container.IsNumber, []any{0, int8(1), uint64(2), 1.5, float32(2)}, []any{nil, "1", true}},
		{"IsAbsent", container.IsAbsent, []any{nil, nilPtr, nilMap, (func())(nil)}, []any{0, "", &low{}, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.yes {
				assert.True(t, tt.pred(v), "%#v", v)
			}
			for _, v := range tt.no {
				assert.False(t, tt.pred(v), "%#v", v)
			}
		})
	}
}

func TestForEach_Slice(t *testing.T) {
	var got []string
	var idx []int

	err := container.ForEach([]string{"x", "y", "z"}, func(v any, i int) {
		got = append(got, v.(string))
		idx = append(idx, i)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, got)
	assert.Equal(t, []int{0, 1, 2}, idx)
}

func TestForEach_MapIsKeyOrdered(t *testing.T) {
	var got []int

	err := container.ForEach(map[string]int{"b": 2, "c": 3, "a": 1}, func(v any, _ int) {
		got = append(got, v.(int))
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestForEach_Errors(t *testing.T) {
	noop := func(any, int) {}

	assert.Error(t, container.ForEach(nil, noop))
	assert.Error(t, container.ForEach("abc", noop))
	assert.Error(t, container.ForEach(42, noop))
	assert.Error(t, container.ForEach([]int{1}, nil))
}
