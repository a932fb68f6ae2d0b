package closure

import (
	"testing"

	"github.com/dekarrin/lrgen/set"
	"github.com/stretchr/testify/assert"
)

func Test_Compute_sccCollapse(t *testing.T) {
	// setup
	assert := assert.New(t)

	// edges: 0->1, 1->2, 2->{0,3,5}, 4->3
	edges := map[int][]int{
		0: {1},
		1: {2},
		2: {0, 3, 5},
		4: {3},
	}
	successors := func(x int) []int { return edges[x] }

	values := make([]set.Set[int], 6)
	for i := range values {
		values[i] = set.New(i)
	}

	// execute
	hasCycle := Compute(values, successors, func(dst, src *set.Set[int]) { dst.AddAll(*src) })

	// assert
	expectSizes := []int{5, 5, 5, 1, 2, 1}
	for i, want := range expectSizes {
		assert.Lenf(values[i], want, "node %d", i)
	}
	assert.True(hasCycle)
}

func Test_Compute_dag_noCycle(t *testing.T) {
	// setup
	assert := assert.New(t)

	// 0->1, 1->2, 2 terminal: a plain chain, no cycle anywhere
	edges := map[int][]int{
		0: {1},
		1: {2},
	}
	successors := func(x int) []int { return edges[x] }

	values := make([]set.Set[int], 3)
	for i := range values {
		values[i] = set.New(i)
	}

	// execute
	hasCycle := Compute(values, successors, func(dst, src *set.Set[int]) { dst.AddAll(*src) })

	// assert
	assert.False(hasCycle)
	assert.Len(values[0], 3)
	assert.Len(values[1], 2)
	assert.Len(values[2], 1)
}

func Test_Compute_selfLoopAlone_notFlaggedAsCycle(t *testing.T) {
	// setup
	assert := assert.New(t)

	// a lone node with a direct self-edge is a singleton SCC: no other
	// member is ever popped during its unwind, so it does not set the flag.
	edges := map[int][]int{
		0: {0},
	}
	successors := func(x int) []int { return edges[x] }

	values := []set.Set[int]{set.New(0)}

	// execute
	hasCycle := Compute(values, successors, func(dst, src *set.Set[int]) { dst.AddAll(*src) })

	// assert
	assert.False(hasCycle)
	assert.Len(values[0], 1)
}

func Test_Compute_empty(t *testing.T) {
	assert := assert.New(t)

	hasCycle := Compute([]set.Set[int]{}, func(int) []int { return nil }, func(dst, src *set.Set[int]) { dst.AddAll(*src) })

	assert.False(hasCycle)
}
