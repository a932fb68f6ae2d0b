// Package lalr computes LALR(1) lookaheads for an LR(0) automaton using the
// DeRemer-Pennello relations (DR, reads, includes, lookback) instead of
// merging full LR(1) states: Read and Follow are each a single closure.Compute
// pass over the automaton's nonterminal transitions, and the lookahead of a
// (state, production) pair is the union of Follow over whatever transitions
// look back to it.
package lalr

import (
	"sort"

	"github.com/dekarrin/lrgen/closure"
	"github.com/dekarrin/lrgen/grammar"
	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/lr0"
	"github.com/dekarrin/lrgen/set"
)

// transition is a nonterminal GOTO transition (p, A): state p has a GOTO
// defined on variable A. The DeRemer-Pennello relations are all expressed as
// edges between members of this set, so every relation below is built over
// the same index space.
type transition struct {
	State int
	Var   int
}

// Lookaheads holds the LALR(1) lookahead set of every (state, production)
// pair reached by Compute: the reduce items of the LR(0) automaton.
type Lookaheads struct {
	byState []map[int][]laction.Lookahead // byState[state][production] = sorted lookaheads
}

// Of returns the lookahead set for the complete item of production in
// state, or nil if that pair never arises (production's item is never
// complete in state).
func (l Lookaheads) Of(state, production int) []laction.Lookahead {
	return l.byState[state][production]
}

// Compute runs the DeRemer-Pennello algorithm over a's nonterminal
// transitions and returns the LALR(1) lookahead of every reduce item in a.
func Compute(g grammar.Grammar, a lr0.Automaton, nullable []bool, first grammar.TerminalSets) Lookaheads {
	trans, index := buildTransitions(a)
	n := len(trans)

	// DR(p,A): terminals shiftable immediately after taking the (p,A)
	// transition, plus EndOfInput for the transition out of the initial
	// state on the grammar's original start variable.
	dr := make([]set.Set[laction.Lookahead], n)
	for i, t := range trans {
		dr[i] = set.New[laction.Lookahead]()
		target, _ := a.Goto(t.State, grammar.Var(t.Var))
		for sym := range a.Gotos[target] {
			if sym.IsTerminal() {
				dr[i].Add(laction.Lookahead(sym.Index()))
			}
		}
		if isStartTransition(g, t) {
			dr[i].Add(laction.EndOfInput)
		}
	}

	readsSucc := buildReads(a, trans, index, nullable)
	read := make([]set.Set[laction.Lookahead], n)
	for i := range dr {
		read[i] = dr[i].Copy()
	}
	closure.Compute(read, readsSucc, func(dst, src *set.Set[laction.Lookahead]) {
		dst.AddAll(*src)
	})

	includesSucc, lookback := buildIncludesAndLookback(g, a, trans, index, nullable)
	follow := make([]set.Set[laction.Lookahead], n)
	for i := range read {
		follow[i] = read[i].Copy()
	}
	closure.Compute(follow, includesSucc, func(dst, src *set.Set[laction.Lookahead]) {
		dst.AddAll(*src)
	})

	byState := make([]map[int][]laction.Lookahead, a.StateCount())
	for state := range byState {
		byState[state] = map[int][]laction.Lookahead{}
	}
	for key, members := range lookback {
		merged := set.New[laction.Lookahead]()
		for _, m := range members {
			merged.AddAll(follow[m])
		}
		byState[key.state][key.production] = set.Sorted(merged)
	}

	return Lookaheads{byState: byState}
}

// isStartTransition reports whether t is the unique nonterminal transition
// from the initial state on the grammar's original (pre-augmentation) start
// variable: the one transition whose DR set must be seeded with EndOfInput
// by convention rather than derived from a shift, since nothing follows the
// start symbol in the accepting state.
func isStartTransition(g grammar.Grammar, t transition) bool {
	origStart := g.RHSAt(g.StartProduction(), 0)
	return t.State == 0 && t.Var == origStart.Index()
}

// buildTransitions enumerates every nonterminal GOTO transition in a, sorted
// by (state, variable) for a deterministic index assignment.
func buildTransitions(a lr0.Automaton) ([]transition, map[transition]int) {
	var list []transition
	for p := 0; p < a.StateCount(); p++ {
		for sym := range a.Gotos[p] {
			if sym.IsVariable() {
				list = append(list, transition{State: p, Var: sym.Index()})
			}
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].State != list[j].State {
			return list[i].State < list[j].State
		}
		return list[i].Var < list[j].Var
	})
	index := make(map[transition]int, len(list))
	for i, t := range list {
		index[t] = i
	}
	return list, index
}

// buildReads returns, for each transition index, the indices of the
// transitions it reads from: (p,A) reads (r,C) when r = GOTO(p,A) and C is a
// nullable variable with a GOTO defined out of r.
func buildReads(a lr0.Automaton, trans []transition, index map[transition]int, nullable []bool) func(int) []int {
	succ := make([][]int, len(trans))
	for i, t := range trans {
		r, _ := a.Goto(t.State, grammar.Var(t.Var))
		for sym := range a.Gotos[r] {
			if sym.IsVariable() && nullable[sym.Index()] {
				if j, ok := index[transition{State: r, Var: sym.Index()}]; ok {
					succ[i] = append(succ[i], j)
				}
			}
		}
	}
	return func(x int) []int { return succ[x] }
}

// lookbackKey identifies a complete item: production's RHS fully walked
// lands on state.
type lookbackKey struct {
	state      int
	production int
}

// buildIncludesAndLookback walks every production of every transition's
// variable once, computing both relations in the same pass: includes links
// a later transition back to an earlier one it was derived under, and
// lookback links a finished item to the transition whose lookahead it
// inherits.
func buildIncludesAndLookback(g grammar.Grammar, a lr0.Automaton, trans []transition, index map[transition]int, nullable []bool) (func(int) []int, map[lookbackKey][]int) {
	succ := make([][]int, len(trans))
	lookback := map[lookbackKey][]int{}

	for i, t := range trans {
		for _, prod := range g.ProductionsOf(t.Var) {
			rhs := g.RHS(prod)

			if q, ok := walkGoto(a, t.State, rhs); ok {
				key := lookbackKey{state: q, production: prod}
				lookback[key] = append(lookback[key], i)
			}

			for pos, sym := range rhs {
				if !sym.IsVariable() {
					continue
				}
				gamma := rhs[pos+1:]
				if !allNullable(gamma, nullable) {
					continue
				}
				beta := rhs[:pos]
				p, ok := walkGoto(a, t.State, beta)
				if !ok {
					continue
				}
				if j, ok := index[transition{State: p, Var: sym.Index()}]; ok {
					succ[j] = append(succ[j], i)
				}
			}
		}
	}

	return func(x int) []int { return succ[x] }, lookback
}

// walkGoto follows the GOTO chain for symbols starting at state, returning
// the state reached and whether every step was defined.
func walkGoto(a lr0.Automaton, state int, symbols []grammar.Symbol) (int, bool) {
	s := state
	for _, sym := range symbols {
		next, ok := a.Goto(s, sym)
		if !ok {
			return 0, false
		}
		s = next
	}
	return s, true
}

// allNullable reports whether gamma derives the empty string: every symbol
// in it must be a nullable variable. An empty gamma is vacuously nullable.
func allNullable(gamma []grammar.Symbol, nullable []bool) bool {
	for _, sym := range gamma {
		if sym.IsTerminal() || !nullable[sym.Index()] {
			return false
		}
	}
	return true
}
