package grammar

import (
	"github.com/dekarrin/lrgen/closure"
	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/set"
)

// Follow computes, for every variable, the set of lookahead classes
// (terminal, or EndOfInput) that can immediately follow it in some
// sentential form. The augmented start variable's FOLLOW always contains
// EndOfInput, seeded by semantic position (g.StartVariable()) rather than
// relying on it happening to be the highest index.
//
// For every production A -> α B β, FIRST(β) is added directly to FOLLOW(B)
// (FIRST is already final by this point); if β is nullable, FOLLOW(A) is
// also added, recorded as a dependency edge B -> A. closure.Compute
// resolves the resulting fixed point, including any cycles, in one pass.
func Follow(g Grammar, nullable []bool, first TerminalSets) LookaheadSets {
	varCount := g.VariableCount()
	values := make([]set.Set[laction.Lookahead], varCount)
	deps := make([][]int, varCount)
	for v := range values {
		values[v] = set.New[laction.Lookahead]()
	}
	values[g.StartVariable()].Add(laction.EndOfInput)

	for _, p := range g.Productions() {
		for i, sym := range p.RHS {
			if !sym.IsVariable() {
				continue
			}
			b := sym.Index()
			beta := p.RHS[i+1:]
			betaFirst, betaNullable := firstOfSeq(beta, nullable, first)
			for _, t := range set.Sorted(betaFirst) {
				values[b].Add(laction.Lookahead(t))
			}
			if betaNullable {
				deps[b] = append(deps[b], p.LHS)
			}
		}
	}

	closure.Compute(values, func(x int) []int { return deps[x] }, func(dst, src *set.Set[laction.Lookahead]) {
		dst.AddAll(*src)
	})

	perVariable := make([][]laction.Lookahead, varCount)
	for v, s := range values {
		perVariable[v] = set.Sorted(s)
	}
	return buildLookaheadSets(perVariable)
}

// firstOfSeq returns the set of terminals that can begin seq and whether
// seq as a whole is nullable (vacuously true for an empty seq).
func firstOfSeq(seq []Symbol, nullable []bool, first TerminalSets) (set.Set[int], bool) {
	result := set.New[int]()
	for _, sym := range seq {
		if sym.IsTerminal() {
			result.Add(sym.Index())
			return result, false
		}
		for _, t := range first.Of(sym.Index()) {
			result.Add(t)
		}
		if !nullable[sym.Index()] {
			return result, false
		}
	}
	return result, true
}
