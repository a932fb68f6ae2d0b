// Package grammar stores context-free grammars in a flat, indexable form
// and provides the fixed-point analyses (nullability, FIRST, FOLLOW) that
// the LR construction strategies build on. A Grammar is built once by
// Builder and is read-only thereafter; every downstream automaton and
// table holds it (or a derived summary of it) without further mutation.
package grammar

import (
	"fmt"
	"strings"
)

// Production is the read-only view of one production: its LHS variable and
// its RHS symbol sequence.
type Production struct {
	LHS int
	RHS []Symbol
}

func (p Production) String() string {
	parts := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		parts[i] = s.String()
	}
	rhs := strings.Join(parts, " ")
	if rhs == "" {
		rhs = "ε"
	}
	return fmt.Sprintf("V%d -> %s", p.LHS, rhs)
}

// Rule is the read-only view of one variable's productions.
type Rule struct {
	Variable    int
	Productions []Production
}

// Grammar is an immutable flat encoding of a context-free grammar's
// productions, augmented with a synthetic start production by Builder.Build.
type Grammar struct {
	lhs           []int    // lhs[p]: LHS variable of production p
	symbols       []Symbol // concatenation of every production's RHS
	alts          []int    // alts[p], alts[p+1]: bounds into symbols for production p
	rules         []int    // rules[v], rules[v+1]: bounds into [0,ProductionCount) for variable v
	wordCount     int
	startVariable int
}

// ProductionCount returns the number of productions, including the
// augmented start production.
func (g Grammar) ProductionCount() int {
	return len(g.lhs)
}

// VariableCount returns the number of variables, including the augmented
// start variable.
func (g Grammar) VariableCount() int {
	return len(g.rules) - 1
}

// WordCount returns one plus the maximum terminal index actually used
// anywhere in the grammar's productions.
func (g Grammar) WordCount() int {
	return g.wordCount
}

// StartVariable returns the index of the augmented start variable, S'.
// It is always VariableCount()-1.
func (g Grammar) StartVariable() int {
	return g.startVariable
}

// StartProduction returns the index of the sole production of the
// augmented start variable, S' -> Var(0).
func (g Grammar) StartProduction() int {
	return g.ProductionCount() - 1
}

// LHS returns the LHS variable of production p.
func (g Grammar) LHS(p int) int {
	return g.lhs[p]
}

// RHS returns a copy of the RHS symbol sequence of production p.
func (g Grammar) RHS(p int) []Symbol {
	s := g.symbols[g.alts[p]:g.alts[p+1]]
	cp := make([]Symbol, len(s))
	copy(cp, s)
	return cp
}

// RHSLen returns the length of production p's RHS.
func (g Grammar) RHSLen(p int) int {
	return g.alts[p+1] - g.alts[p]
}

// RHSAt returns the symbol at position pos in production p's RHS.
func (g Grammar) RHSAt(p, pos int) Symbol {
	return g.symbols[g.alts[p]+pos]
}

// ProductionsOf returns the production indices belonging to variable v.
func (g Grammar) ProductionsOf(v int) []int {
	lo, hi := g.rules[v], g.rules[v+1]
	out := make([]int, 0, hi-lo)
	for p := lo; p < hi; p++ {
		out = append(out, p)
	}
	return out
}

// Productions iterates every production, LHS variable and RHS symbols
// included, in production-index order.
func (g Grammar) Productions() []Production {
	out := make([]Production, g.ProductionCount())
	for p := range out {
		out[p] = Production{LHS: g.lhs[p], RHS: g.RHS(p)}
	}
	return out
}

// Rules iterates every variable and its productions, in variable-index
// order.
func (g Grammar) Rules() []Rule {
	out := make([]Rule, g.VariableCount())
	for v := range out {
		prodIdxs := g.ProductionsOf(v)
		prods := make([]Production, len(prodIdxs))
		for i, p := range prodIdxs {
			prods[i] = Production{LHS: g.lhs[p], RHS: g.RHS(p)}
		}
		out[v] = Rule{Variable: v, Productions: prods}
	}
	return out
}

func (g Grammar) String() string {
	var sb strings.Builder
	for _, r := range g.Rules() {
		for i, p := range r.Productions {
			if i == 0 {
				fmt.Fprintf(&sb, "V%d -> ", r.Variable)
			} else {
				sb.WriteString("     | ")
			}
			parts := make([]string, len(p.RHS))
			for j, s := range p.RHS {
				parts[j] = s.String()
			}
			rhs := strings.Join(parts, " ")
			if rhs == "" {
				rhs = "ε"
			}
			sb.WriteString(rhs)
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
