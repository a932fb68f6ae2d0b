package grammar

import "sort"

// TerminalSets stores a sorted, duplicate-free terminal-index set per
// variable as one flat buffer sliced by per-variable bounds, per the data
// model's flat-encoding convention (mirrors Grammar's own lhs/alts/rules
// layout). Used for FIRST.
type TerminalSets struct {
	buf    []int
	bounds []int // len == variable count + 1
}

// Of returns variable v's set as a sorted slice. The returned slice aliases
// internal storage and must not be mutated.
func (t TerminalSets) Of(v int) []int {
	return t.buf[t.bounds[v]:t.bounds[v+1]]
}

// Has reports whether term is a member of variable v's set.
func (t TerminalSets) Has(v, term int) bool {
	s := t.Of(v)
	i := sort.SearchInts(s, term)
	return i < len(s) && s[i] == term
}

func buildTerminalSets(perVariable [][]int) TerminalSets {
	t := TerminalSets{bounds: make([]int, len(perVariable)+1)}
	for v, terms := range perVariable {
		t.bounds[v] = len(t.buf)
		t.buf = append(t.buf, terms...)
	}
	t.bounds[len(perVariable)] = len(t.buf)
	return t
}
