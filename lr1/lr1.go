// Package lr1 builds the canonical collection of LR(1) item sets for a
// grammar: each LR(0) item paired with a single-terminal (or end-of-input)
// lookahead, closed under the rule that splits a variable's lookahead by
// what can follow it in the item it was introduced from.
package lr1

import (
	"fmt"

	"github.com/dekarrin/lrgen/grammar"
	"github.com/dekarrin/lrgen/itemset"
	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/set"
)

// Item is an LR(0) item paired with a single lookahead class.
type Item struct {
	Production int
	Pos        int
	Lookahead  laction.Lookahead
}

// Key implements itemset.Item.
func (i Item) Key() string {
	return fmt.Sprintf("%d.%d.%d", i.Production, i.Pos, i.Lookahead)
}

func (i Item) String() string {
	return fmt.Sprintf("(p%d, %d, %s)", i.Production, i.Pos, i.Lookahead)
}

type variant struct {
	g        grammar.Grammar
	nullable []bool
	first    grammar.TerminalSets
}

func (v variant) Start() Item {
	return Item{Production: v.g.StartProduction(), Pos: 0, Lookahead: laction.EndOfInput}
}

func (v variant) Advance(i Item) Item {
	return Item{Production: i.Production, Pos: i.Pos + 1, Lookahead: i.Lookahead}
}

func (v variant) SymbolAtDot(i Item) (grammar.Symbol, bool) {
	if i.Pos >= v.g.RHSLen(i.Production) {
		return grammar.Symbol{}, false
	}
	return v.g.RHSAt(i.Production, i.Pos), true
}

// Closure is the LR(1) closure: for each item (p, pos, a) with a variable
// B at the dot and suffix β after B, every production of B is added at
// position 0 with each lookahead carried by β (and a, if β is nullable).
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
		it := result[idx]
		sym, ok := v.SymbolAtDot(it)
		if !ok || sym.IsTerminal() {
			continue
		}
		b := sym.Index()
		beta := v.g.RHS(it.Production)[it.Pos+1:]
		carried := carriedLookaheads(beta, it.Lookahead, v.nullable, v.first)

		for _, p := range v.g.ProductionsOf(b) {
			for _, la := range carried {
				cand := Item{Production: p, Pos: 0, Lookahead: la}
				if !seen[cand] {
					seen[cand] = true
					result = append(result, cand)
				}
			}
		}
	}

	return result
}

// carriedLookaheads computes FIRST(beta a): the terminals that can begin
// beta, plus a itself if beta derives the empty string.
func carriedLookaheads(beta []grammar.Symbol, a laction.Lookahead, nullable []bool, first grammar.TerminalSets) []laction.Lookahead {
	result := set.New[laction.Lookahead]()
	allNullable := true

	for _, sym := range beta {
		if sym.IsTerminal() {
			result.Add(laction.Lookahead(sym.Index()))
			allNullable = false
			break
		}
		for _, t := range first.Of(sym.Index()) {
			result.Add(laction.Lookahead(t))
		}
		if !nullable[sym.Index()] {
			allNullable = false
			break
		}
	}

	if allNullable {
		result.Add(a)
	}

	return set.Sorted(result)
}

// Automaton is the canonical collection of LR(1) item sets and their GOTO
// transitions for a grammar.
type Automaton struct {
	Grammar grammar.Grammar
	States  [][]Item
	Gotos   []map[grammar.Symbol]int
}

// Build constructs the LR(1) automaton for g, given its nullability and
// FIRST sets.
func Build(g grammar.Grammar, nullable []bool, first grammar.TerminalSets) Automaton {
	col := itemset.Build[Item](variant{g: g, nullable: nullable, first: first})
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
