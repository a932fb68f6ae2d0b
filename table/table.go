// Package table flattens an LR(0)+lookahead (LALR(1)) or LR(1) automaton
// into a dense ACTION/GOTO table, resolving shift/reduce and reduce/reduce
// conflicts through a caller-supplied policy. The core makes no precedence
// or associativity decisions of its own; Resolver is the only place such a
// policy may live.
package table

import (
	"fmt"

	"github.com/dekarrin/lrgen/grammar"
	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/lalr"
	"github.com/dekarrin/lrgen/lr0"
	"github.com/dekarrin/lrgen/lr1"
	"github.com/dekarrin/lrgen/lrerrors"
	"github.com/dekarrin/rosed"
)

// StartState is the state every parse begins in.
const StartState = 0

// Resolver is invoked when the encoder finds an ACTION-table slot already
// occupied by a different action. Returning a non-nil error aborts
// construction with a lrerrors.ConstructionError tagged with the offending
// state; otherwise the returned Action is installed in the slot.
type Resolver func(laction.Conflict) (laction.Action, error)

// Reduction is the (variable, RHS length) pair a Reduce(production) action
// pops by: n states come off the stack and the GOTO on variable from the
// newly exposed state is taken.
type Reduction struct {
	Var    int
	RHSLen int
}

// Table is the flattened ACTION/GOTO table for a grammar, produced by
// LR1Construct or LALR1Construct. It holds a copy of the grammar it was
// built from so callers can look up production shapes without keeping their
// own reference around.
type Table struct {
	grammar    grammar.Grammar
	wordCount  int
	varCount   int
	actions    []laction.Action
	gotos      []int // -1 denotes absent
	reductions []Reduction
}

// Action returns the ACTION-table entry for state on lookahead word.
func (t Table) Action(state int, word laction.Lookahead) laction.Action {
	return t.actions[state*(t.wordCount+1)+word.Column()]
}

// Goto returns the GOTO-table entry for state on variable v, if defined.
func (t Table) Goto(state, v int) (int, bool) {
	s := t.gotos[state*t.varCount+v]
	if s < 0 {
		return 0, false
	}
	return s, true
}

// Reduction returns the (variable, RHS length) descriptor for production.
func (t Table) Reduction(production int) Reduction {
	return t.reductions[production]
}

// Reductions returns every production's (variable, RHS length) descriptor,
// in production-index order. Exposed for inspection and testing, mirroring
// the original construction's own reduction-table getter.
func (t Table) Reductions() []Reduction {
	out := make([]Reduction, len(t.reductions))
	copy(out, t.reductions)
	return out
}

// States returns the number of states in the table. Equivalent to
// StateCount; kept as a separate, shorter accessor for parity with the
// original construction's num_states getter.
func (t Table) States() int {
	return t.StateCount()
}

// StateCount returns the number of states in the table.
func (t Table) StateCount() int {
	return len(t.actions) / (t.wordCount + 1)
}

// Grammar returns the grammar this table was constructed from.
func (t Table) Grammar() grammar.Grammar {
	return t.grammar
}

// item is the shape the shared encoder needs from either automaton flavor:
// a production and dot position, and (when the item is complete) the
// lookahead classes the automaton reports for it.
type item struct {
	production int
	pos        int
	lookaheads []laction.Lookahead
}

// LR1Construct builds the canonical LR(1) table for g. trace, if given, is
// called with one line of text per state encoded; nothing is emitted if no
// trace function is passed, matching the driver's own optional trace hook.
func LR1Construct(g grammar.Grammar, resolver Resolver, trace ...func(string)) (Table, error) {
	nullable := grammar.Nullable(g)
	first := grammar.First(g, nullable)
	auto := lr1.Build(g, nullable, first)

	itemsOf := func(state int) []item {
		out := make([]item, len(auto.States[state]))
		for i, it := range auto.States[state] {
			out[i] = item{production: it.Production, pos: it.Pos, lookaheads: []laction.Lookahead{it.Lookahead}}
		}
		return out
	}

	return encode(g, auto.StateCount(), func(s int, sym grammar.Symbol) (int, bool) { return auto.Goto(s, sym) }, itemsOf, resolver, firstTraceFunc(trace))
}

// LALR1Construct builds the LALR(1) table for g: the LR(0) automaton with
// lookaheads computed via the DeRemer-Pennello relations, rather than the
// full LR(1) canonical collection. trace behaves as in LR1Construct.
func LALR1Construct(g grammar.Grammar, resolver Resolver, trace ...func(string)) (Table, error) {
	nullable := grammar.Nullable(g)
	first := grammar.First(g, nullable)
	auto := lr0.Build(g)
	la := lalr.Compute(g, auto, nullable, first)

	itemsOf := func(state int) []item {
		out := make([]item, len(auto.States[state]))
		for i, it := range auto.States[state] {
			var lookaheads []laction.Lookahead
			if it.Pos >= g.RHSLen(it.Production) {
				lookaheads = la.Of(state, it.Production)
			}
			out[i] = item{production: it.Production, pos: it.Pos, lookaheads: lookaheads}
		}
		return out
	}

	return encode(g, auto.StateCount(), func(s int, sym grammar.Symbol) (int, bool) { return auto.Goto(s, sym) }, itemsOf, resolver, firstTraceFunc(trace))
}

// firstTraceFunc returns the sole trace function passed to a Construct
// call, or nil. A slice keeps the parameter optional without an extra
// exported "no trace" sentinel value to import at call sites.
func firstTraceFunc(trace []func(string)) func(string) {
	if len(trace) == 0 {
		return nil
	}
	return trace[0]
}

// encode is the shared table-filling pass, independent of which automaton
// flavor supplied its items: for every state's items, an incomplete item
// with a terminal at the dot writes a Shift, a complete item with lookaheads
// writes a Reduce (or Accept, for the augmented start), and conflicts
// between two writes to the same slot are handed to resolver.
func encode(g grammar.Grammar, stateCount int, gotoFn func(state int, sym grammar.Symbol) (int, bool), itemsOf func(state int) []item, resolver Resolver, trace func(string)) (Table, error) {
	wordCount := g.WordCount()
	varCount := g.VariableCount() - 1 // exclude the augmented start variable

	actions := make([]laction.Action, stateCount*(wordCount+1))
	gotos := make([]int, stateCount*varCount)
	for i := range gotos {
		gotos[i] = -1
	}
	reductions := make([]Reduction, g.ProductionCount())
	for p := 0; p < g.ProductionCount(); p++ {
		reductions[p] = Reduction{Var: g.LHS(p), RHSLen: g.RHSLen(p)}
	}

	for state := 0; state < stateCount; state++ {
		if trace != nil {
			trace(fmt.Sprintf("encoding state %d", state))
		}
		for _, it := range itemsOf(state) {
			if it.pos < g.RHSLen(it.production) {
				sym := g.RHSAt(it.production, it.pos)
				if !sym.IsTerminal() {
					continue
				}
				target, _ := gotoFn(state, sym)
				col := sym.Index() + 1
				idx := state*(wordCount+1) + col
				incoming := laction.Action{Kind: laction.Shift, State: target}

				existing := actions[idx]
				if existing.Kind == laction.Reduce {
					resolved, err := resolver(laction.Conflict{
						Kind: laction.ShiftReduce, Word: laction.Lookahead(sym.Index()),
						Existing: existing, Incoming: incoming,
					})
					if err != nil {
						return Table{}, lrerrors.NewConstructionError(state, laction.Conflict{
							Kind: laction.ShiftReduce, Word: laction.Lookahead(sym.Index()),
							Existing: existing, Incoming: incoming,
						}, err)
					}
					actions[idx] = resolved
				} else {
					actions[idx] = incoming
				}
				continue
			}

			if it.production == g.StartProduction() {
				actions[state*(wordCount+1)+0] = laction.Action{Kind: laction.Accept}
				continue
			}

			incoming := laction.Action{Kind: laction.Reduce, Production: it.production}
			for _, la := range it.lookaheads {
				col := la.Column()
				idx := state*(wordCount+1) + col
				existing := actions[idx]

				switch existing.Kind {
				case laction.Invalid:
					actions[idx] = incoming
				case laction.Shift:
					resolved, err := resolver(laction.Conflict{
						Kind: laction.ShiftReduce, Word: la, Existing: existing, Incoming: incoming,
					})
					if err != nil {
						return Table{}, lrerrors.NewConstructionError(state, laction.Conflict{
							Kind: laction.ShiftReduce, Word: la, Existing: existing, Incoming: incoming,
						}, err)
					}
					actions[idx] = resolved
				case laction.Reduce:
					if existing.Production == it.production {
						continue
					}
					resolved, err := resolver(laction.Conflict{
						Kind: laction.ReduceReduce, Word: la, Existing: existing, Incoming: incoming,
					})
					if err != nil {
						return Table{}, lrerrors.NewConstructionError(state, laction.Conflict{
							Kind: laction.ReduceReduce, Word: la, Existing: existing, Incoming: incoming,
						}, err)
					}
					actions[idx] = resolved
				}
			}
		}

		for v := 0; v < varCount; v++ {
			if s, ok := gotoFn(state, grammar.Var(v)); ok {
				gotos[state*varCount+v] = s
			}
		}
	}

	return Table{
		grammar: g, wordCount: wordCount, varCount: varCount,
		actions: actions, gotos: gotos, reductions: reductions,
	}, nil
}

// String renders the table as a state-by-column grid, matching the
// teacher's automaton dump layout: one row per state, "A:" columns for
// ACTION followed by "G:" columns for GOTO.
func (t Table) String() string {
	data := [][]string{}

	header := []string{"S", "|"}
	header = append(header, "A:$")
	for w := 0; w < t.wordCount; w++ {
		header = append(header, fmt.Sprintf("A:t%d", w))
	}
	header = append(header, "|")
	for v := 0; v < t.varCount; v++ {
		header = append(header, fmt.Sprintf("G:V%d", v))
	}
	data = append(data, header)

	for s := 0; s < t.StateCount(); s++ {
		row := []string{fmt.Sprintf("%d", s), "|"}

		for col := 0; col <= t.wordCount; col++ {
			word := laction.Lookahead(col - 1)
			act := t.Action(s, word)
			cell := ""
			switch act.Kind {
			case laction.Accept:
				cell = "acc"
			case laction.Shift:
				cell = fmt.Sprintf("s%d", act.State)
			case laction.Reduce:
				cell = fmt.Sprintf("r%d", act.Production)
			}
			row = append(row, cell)
		}

		row = append(row, "|")
		for v := 0; v < t.varCount; v++ {
			cell := ""
			if target, ok := t.Goto(s, v); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
