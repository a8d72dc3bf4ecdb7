package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameValue(t *testing.T) {
	fn := func() {}
	ch := make(chan int)
	ptr := &struct{ N int }{N: 1}

	tests := []struct {
		name     string
		a, b     any
		expected bool
	}{
		{"Nil", nil, nil, true},
		{"NilAndValue", nil, 0, false},
		{"SameScalar", 3, 3, true},
		{"DifferentIntTypes", 3, int64(3), false},
		{"NaN", math.NaN(), math.NaN(), true},
		{"NaNFloat32", float32(math.NaN()), float32(math.NaN()), true},
		{"NaNAndNumber", math.NaN(), 1.0, false},
		{"NestedNaN", map[string]any{"r": []any{math.NaN()}}, map[string]any{"r": []any{math.NaN()}}, true},
		{"SameFunc", fn, fn, true},
		{"DifferentFuncs", fn, func() {}, false},
		{"SameChannel", ch, ch, true},
		{"PointerContents", ptr, &struct{ N int }{N: 1}, true},
		{"PointerContentsDiffer", ptr, &struct{ N int }{N: 2}, false},
		{"NilVersusEmptySlice", []int(nil), []int{}, false},
		{"MapMissingKey", map[string]int{"a": 1}, map[string]int{"b": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sameValue(tt.a, tt.b))
		})
	}
}

func TestCloneValue(t *testing.T) {
	t.Run("NestedContainers", func(t *testing.T) {
		original := map[string]any{
			"hosts": []string{"a", "b"},
			"db":    map[string]any{"port": 3306},
			"pair":  [2][]int{{1}, {2}},
		}
		clone := cloneValue(original).(map[string]any)
		assert.Equal(t, original, clone)

		clone["hosts"].([]string)[0] = "changed"
		clone["db"].(map[string]any)["port"] = 0
		clone["pair"].([2][]int)[0][0] = 9

		assert.Equal(t, []string{"a", "b"}, original["hosts"])
		assert.Equal(t, 3306, original["db"].(map[string]any)["port"])
		assert.Equal(t, [2][]int{{1}, {2}}, original["pair"])
	})

	t.Run("StructFields", func(t *testing.T) {
		type site struct {
			Name  string
			Langs []string
			home  *string
		}
		home := "https://example.com"
		original := &site{Name: "blog", Langs: []string{"en"}, home: &home}

		clone := cloneValue(original).(*site)
		assert.NotSame(t, original, clone)
		assert.True(t, sameValue(original, clone))

		clone.Langs[0] = "de"
		assert.Equal(t, []string{"en"}, original.Langs)
	})

	t.Run("CyclicPointer", func(t *testing.T) {
		type node struct{ Next *node }
		n := &node{}
		n.Next = n

		clone := cloneValue(n).(*node)
		assert.Same(t, clone, clone.Next)
		assert.NotSame(t, n, clone)
		assert.True(t, sameValue(n, clone))
	})

	t.Run("Scalars", func(t *testing.T) {
		assert.Nil(t, cloneValue(nil))
		assert.Equal(t, "x", cloneValue("x"))
		assert.Equal(t, []int(nil), cloneValue([]int(nil)))
	})
}
