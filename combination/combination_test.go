package combination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateGroupMajorOrder(t *testing.T) {
	groups := [][]string{
		{"A", "B"},
		{"C"},
		{"D", "E", "F"},
	}
	combos, err := Enumerate(groups)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([][]string{
		{"A", "C", "D"},
		{"A", "C", "E"},
		{"A", "C", "F"},
		{"B", "C", "D"},
		{"B", "C", "E"},
		{"B", "C", "F"},
	}, combos)
}

func TestEnumerateCountIsProductOfGroupSizes(t *testing.T) {
	groups := [][]int{
		{1, 2, 3},
		{4, 5},
		{6, 7, 8, 9},
		{10},
	}
	combos, err := Enumerate(groups)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(combos, 3*2*4*1)
	for _, c := range combos {
		assert.Len(c, len(groups))
	}
}

func TestEnumerateEmptyGroupCancels(t *testing.T) {
	groups := [][]int{
		{1, 2},
		{},
		{3},
	}
	combos, err := Enumerate(groups)
	assert.ErrorIs(t, err, ErrEmptyGroup)
	assert.Nil(t, combos)
}

func TestEnumerateNoGroups(t *testing.T) {
	combos, err := Enumerate([][]int{})
	assert.NoError(t, err)
	assert.Empty(t, combos)
}

func TestEnumerateSingleGroup(t *testing.T) {
	combos, err := Enumerate([][]int{{7, 8, 9}})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([][]int{{7}, {8}, {9}}, combos)
}

func TestEnumerateYieldsDistinctSlices(t *testing.T) {
	combos, err := Enumerate([][]int{{1, 2}, {3, 4}})
	assert.NoError(t, err)

	// mutating one combination must not leak into any other
	combos[0][0] = 99
	assert.Equal(t, []int{1, 4}, combos[1])
}

func TestEnumerateNoDuplicates(t *testing.T) {
	groups := [][]int{{1, 2}, {3, 4, 5}, {6, 7}}
	combos, err := Enumerate(groups)
	assert.NoError(t, err)

	seen := make(map[string]bool)
	for _, c := range combos {
		key := fmt.Sprint(c)
		assert.False(t, seen[key], "combination %v emitted twice", c)
		seen[key] = true
	}
}

func TestBuildTreeShape(t *testing.T) {
	roots, err := BuildTree([][]string{{"A", "B"}, {"C", "D"}})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(roots, 2)
	for _, r := range roots {
		assert.Len(r.Children, 2)
		for _, c := range r.Children {
			assert.Empty(c.Children)
		}
	}
}

func TestFlattenLeafPerPath(t *testing.T) {
	roots, err := BuildTree([][]int{{1}, {2}, {3}})
	assert.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}}, Flatten(roots))
}
