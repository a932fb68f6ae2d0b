// Package lr0 builds the canonical collection of LR(0) item sets for a
// grammar: the viable-prefix automaton that both the LR(0)-only caller and
// package lalr (as the base automaton for its lookahead computation) need.
package lr0

import (
	"fmt"

	"github.com/dekarrin/lrgen/grammar"
	"github.com/dekarrin/lrgen/itemset"
)

// Item is an LR(0) item: a production with a dot at Pos, 0 <= Pos <=
// len(RHS). An item is complete when Pos equals the RHS length.
type Item struct {
	Production int
	Pos        int
}

// Key implements itemset.Item.
func (i Item) Key() string {
	return fmt.Sprintf("%d.%d", i.Production, i.Pos)
}

func (i Item) String() string {
	return fmt.Sprintf("(p%d, %d)", i.Production, i.Pos)
}

// IsComplete reports whether i's dot has reached the end of its RHS.
func IsComplete(g grammar.Grammar, i Item) bool {
	return i.Pos >= g.RHSLen(i.Production)
}

// IsKernel reports whether i is a kernel item: the start item, or any item
// with the dot not at the beginning of its RHS.
func IsKernel(g grammar.Grammar, i Item) bool {
	return i.Production == g.StartProduction() || i.Pos > 0
}

type variant struct {
	g grammar.Grammar
}

func (v variant) Start() Item {
	return Item{Production: v.g.StartProduction(), Pos: 0}
}

func (v variant) Advance(i Item) Item {
	return Item{Production: i.Production, Pos: i.Pos + 1}
}

func (v variant) SymbolAtDot(i Item) (grammar.Symbol, bool) {
	if i.Pos >= v.g.RHSLen(i.Production) {
		return grammar.Symbol{}, false
	}
	return v.g.RHSAt(i.Production, i.Pos), true
}

// Closure is the LR(0) closure: for each item with a variable at the dot,
// add every (production of that variable, 0) item, to a fixed point.
func (v variant) Closure(items []Item) []Item {
	seen := make(map[Item]bool, len(items))
	result := make([]Item, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			result = append(result, it)
		}
	}

	for idx := 0; idx < len(result); idx++ {
		sym, ok := v.SymbolAtDot(result[idx])
		if !ok || sym.IsTerminal() {
			continue
		}
		for _, p := range v.g.ProductionsOf(sym.Index()) {
			cand := Item{Production: p, Pos: 0}
			if !seen[cand] {
				seen[cand] = true
				result = append(result, cand)
			}
		}
	}

	return result
}

// Automaton is the canonical collection of LR(0) item sets and their GOTO
// transitions for a grammar.
type Automaton struct {
	Grammar grammar.Grammar
	States  [][]Item
	Gotos   []map[grammar.Symbol]int
}

// Build constructs the LR(0) automaton for g.
func Build(g grammar.Grammar) Automaton {
	col := itemset.Build[Item](variant{g})
	return Automaton{Grammar: g, States: col.Sets, Gotos: col.Gotos}
}

// Goto returns the successor state reached from state on symbol, if any.
func (a Automaton) Goto(state int, symbol grammar.Symbol) (int, bool) {
	s, ok := a.Gotos[state][symbol]
	return s, ok
}

// StateCount returns the number of states in the automaton.
func (a Automaton) StateCount() int {
	return len(a.States)
}
