package slices_test

import (
	"testing"

	"github.com/statops/tabstat/pkg/utils/cmp"
	"github.com/statops/tabstat/pkg/utils/slices"
)

func TestSliceUtils(t *testing.T) {
	t.Run("Map maps slice to another", func(t *testing.T) {
		input := []int{3, 5, 7, 11}
		called := 0
		mapper := func(v int) int {
			called += 1
			return v * 2
		}
		output := slices.Map(input, mapper)

		if called != len(input) {
			t.Errorf("mapper has not been called enough. (actual, expected) = (%d, %d)", called, len(input))
		}

		expected := []int{6, 10, 14, 22}
		if !cmp.SliceEq(output, expected) {
			t.Errorf("mapped result is wrong. (actual, expected) = (%v, %v)", output, expected)
		}
	})

	t.Run("ToMap converts slice to map", func(t *testing.T) {
		type T struct {
			key   string
			value int
		}
		values := []T{
			{key: "a", value: 3},
			{key: "b", value: 99},
			{key: "c", value: 100},
			{key: "d", value: 2},
		}

		result := slices.ToMap(values, func(v T) string { return v.key })

		expected := map[string]T{
			"a": {key: "a", value: 3},
			"b": {key: "b", value: 99},
			"c": {key: "c", value: 100},
			"d": {key: "d", value: 2},
		}

		if !cmp.MapEq(result, expected) {
			t.Errorf(
				"ToMap generates wrong map. (actual, expected) = (%v, %v)",
				result, expected,
			)
		}
	})

	t.Run("KeysOf and ValuesOf makes slice from values of map", func(t *testing.T) {
		input := map[int]string{
			1: "foo",
			2: "bar",
			3: "baz",
		}
		{
			actual := slices.ValuesOf(input)
			expected := []string{"foo", "bar", "baz"}

			if !cmp.SliceContentEq(actual, expected) {
				t.Errorf(
					"slice elements are wrong:\nactual   = %+v\nexpected = %+v",
					actual, expected,
				)
			}
		}
		{
			actual := slices.KeysOf(input)
			expected := []int{1, 2, 3}
			if !cmp.SliceContentEq(actual, expected) {
				t.Errorf(
					"slice elements are wrong:\nactual   = %+v\nexpected = %+v",
					actual, expected,
				)
			}
		}
	})

	t.Run("First finds the first element which predicator matches", func(t *testing.T) {
		haystack := []string{"our", "needle", "is", "nice"}
		ret, ok := slices.First(haystack, func(s string) bool { return s[0] == 'n' })
		if !ok {
			t.Error("First could not find target.")
		}
		if ret != "needle" {
			t.Errorf("First finds wrong word. (actual, expected) = (%s, %s)", ret, "needle")
		}
	})

	t.Run("First returns (zerovalue, false) if predicator does never match.", func(t *testing.T) {
		haystack := []string{"this", "haystack", "is", "pure", "and", "dust-free!"}
		ret, ok := slices.First(haystack, func(s string) bool { return s[0] == 'n' })
		if ok {
			t.Errorf("First finds wrong target. %v", ret)
		}
		if ret != "" {
			t.Errorf("First returns non-zero value.: %s", ret)
		}
	})

	t.Run("Sorted sorts into a new slice leaving the source as it was", func(t *testing.T) {
		input := []int{5, 3, 11, 7}
		actual := slices.Sorted(input, func(a, b int) bool { return a < b })

		if !cmp.SliceEq(actual, []int{3, 5, 7, 11}) {
			t.Errorf("sorted result is wrong: %v", actual)
		}
		if !cmp.SliceEq(input, []int{5, 3, 11, 7}) {
			t.Errorf("source slice is modified: %v", input)
		}
	})

	t.Run("Filter keeps only matching elements", func(t *testing.T) {
		input := []int{1, 2, 3, 4, 5, 6}
		actual := slices.Filter(input, func(v int) bool { return v%2 == 0 })
		if !cmp.SliceEq(actual, []int{2, 4, 6}) {
			t.Errorf("filtered result is wrong: %v", actual)
		}
	})

	t.Run("Concat joins slices in order", func(t *testing.T) {
		actual := slices.Concat([]string{"a"}, []string{}, []string{"b", "c"})
		if !cmp.SliceEq(actual, []string{"a", "b", "c"}) {
			t.Errorf("concatenated result is wrong: %v", actual)
		}
	})

	t.Run("Group splits by predicator", func(t *testing.T) {
		match, notmatch := slices.Group([]int{1, 2, 3, 4}, func(v int) bool { return v < 3 })
		if !cmp.SliceEq(match, []int{1, 2}) || !cmp.SliceEq(notmatch, []int{3, 4}) {
			t.Errorf("grouped result is wrong: match=%v notmatch=%v", match, notmatch)
		}
	})
}
