// Package itemset implements the generic canonical-collection worklist
// shared by the LR(0) and LR(1) automata: given a closure operator and the
// three per-item primitives a variant needs (start item, advance, symbol at
// the dot), it builds the states and GOTO transitions once, the same way
// for either item flavor. Packages lr0 and lr1 supply the Variant; neither
// reimplements the worklist.
package itemset

import (
	"sort"
	"strings"

	"github.com/dekarrin/lrgen/grammar"
)

// Item is the capability every item type (LR(0) or LR(1)) must provide so
// item sets can be canonicalized by content: Key must be a string that is
// equal for two items if and only if the items themselves are equal.
type Item interface {
	Key() string
}

// Variant supplies the four item-level operations the worklist is
// parameterized by.
type Variant[I Item] interface {
	// Start returns the initial kernel item: the augmented start
	// production at position 0.
	Start() I

	// Advance returns i with its dot moved one position to the right.
	Advance(i I) I

	// SymbolAtDot returns the symbol immediately right of the dot in i, or
	// false if i is complete.
	SymbolAtDot(i I) (grammar.Symbol, bool)

	// Closure returns the closure of items under this variant's rules.
	Closure(items []I) []I
}

// Collection is the canonical collection of item sets and their GOTO
// transitions produced by Build. Sets[i] is state i's content, sorted and
// duplicate-free; Gotos[i] maps a symbol to the successor state reached by
// shifting it from state i.
type Collection[I Item] struct {
	Sets  [][]I
	Gotos []map[grammar.Symbol]int
}

// Build runs the worklist algorithm: starting from the closure of the
// start item, it repeatedly computes GOTO(S, x) for every symbol x that
// appears at the dot of some item in the current state S, assigning a
// fresh state index the first time a given canonical item set is seen.
//
// GOTO is always recomputed by scanning every item of S for the symbol in
// question; a cursor that skips items already accounted for in an earlier
// GOTO of the same state is a known optimization for LR(0) kernels whose
// correctness under LR(1) lookahead splitting is not obvious, so it is not
// attempted here for either variant.
func Build[I Item](v Variant[I]) Collection[I] {
	startSet, startKey := canonicalize(v.Closure([]I{v.Start()}))

	seen := map[string]int{startKey: 0}
	col := Collection[I]{
		Sets:  [][]I{startSet},
		Gotos: []map[grammar.Symbol]int{{}},
	}

	queue := []int{0}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		S := col.Sets[i]
		done := map[grammar.Symbol]bool{}

		for _, item := range S {
			sym, ok := v.SymbolAtDot(item)
			if !ok || done[sym] {
				continue
			}
			done[sym] = true

			var kernel []I
			for _, j := range S {
				sj, ok := v.SymbolAtDot(j)
				if ok && sj == sym {
					kernel = append(kernel, v.Advance(j))
				}
			}

			T, key := canonicalize(v.Closure(kernel))
			idx, exists := seen[key]
			if !exists {
				idx = len(col.Sets)
				seen[key] = idx
				col.Sets = append(col.Sets, T)
				col.Gotos = append(col.Gotos, map[grammar.Symbol]int{})
				queue = append(queue, idx)
			}
			col.Gotos[i][sym] = idx
		}
	}

	return col
}

// canonicalize sorts items by Key, removes duplicates, and returns both
// the frozen sorted slice and a content hash suitable as a map key.
func canonicalize[I Item](items []I) ([]I, string) {
	sort.Slice(items, func(a, b int) bool { return items[a].Key() < items[b].Key() })

	out := make([]I, 0, len(items))
	var sb strings.Builder
	var prevKey string
	for idx, it := range items {
		k := it.Key()
		if idx > 0 && k == prevKey {
			continue
		}
		out = append(out, it)
		sb.WriteString(k)
		sb.WriteByte(0)
		prevKey = k
	}
	return out, sb.String()
}
