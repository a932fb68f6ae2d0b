package grammar

import (
	"sort"

	"github.com/dekarrin/lrgen/laction"
)

// LookaheadSets stores a sorted, duplicate-free lookahead-class set per
// variable as one flat buffer sliced by per-variable bounds, the same
// layout TerminalSets uses for FIRST. Used for FOLLOW, and reused by
// package lalr for LA(state, production).
type LookaheadSets struct {
	buf    []laction.Lookahead
	bounds []int
}

// Of returns variable v's set as a sorted slice. The returned slice aliases
// internal storage and must not be mutated.
func (t LookaheadSets) Of(v int) []laction.Lookahead {
	return t.buf[t.bounds[v]:t.bounds[v+1]]
}

// Has reports whether ℓ is a member of variable v's set.
func (t LookaheadSets) Has(v int, l laction.Lookahead) bool {
	s := t.Of(v)
	i := sort.Search(len(s), func(i int) bool { return s[i] >= l })
	return i < len(s) && s[i] == l
}

func buildLookaheadSets(perVariable [][]laction.Lookahead) LookaheadSets {
	t := LookaheadSets{bounds: make([]int, len(perVariable)+1)}
	for v, las := range perVariable {
		t.bounds[v] = len(t.buf)
		t.buf = append(t.buf, las...)
	}
	t.bounds[len(perVariable)] = len(t.buf)
	return t
}
