package emptyx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmpty(t *testing.T) {
	type point struct{ X, Y int }

	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"string", "x", false},
		{"zero int", 0, true},
		{"int", 7, false},
		{"false", false, true},
		{"true", true, false},
		{"nil slice", []string(nil), true},
		{"empty slice", []string{}, true},
		{"slice", []string{"a"}, false},
		{"nil map", map[string]int(nil), true},
		{"map", map[string]int{"a": 1}, false},
		{"nil pointer", (*int)(nil), true},
		{"zero struct", point{}, true},
		{"struct", point{X: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Empty(tc.value))
		})
	}
}

func TestTypedHelpers(t *testing.T) {
	assert.True(t, Slice[int](nil))
	assert.False(t, Slice([]int{1}))

	assert.True(t, Map[string, int](nil))
	assert.False(t, Map(map[string]int{"a": 1}))

	assert.True(t, String(""))
	assert.False(t, String("x"))

	assert.True(t, Pointer[int](nil))
	n := 3
	assert.False(t, Pointer(&n))
}
