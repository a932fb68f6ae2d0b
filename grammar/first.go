package grammar

import (
	"github.com/dekarrin/lrgen/closure"
	"github.com/dekarrin/lrgen/set"
)

// First computes, for every variable, the set of terminals that can begin
// some sentential form it derives (nullability is tracked separately by
// Nullable and is not folded into this result).
//
// Each production A -> X1 X2 ... Xk contributes FIRST(Xi) to FIRST(A) for
// every i such that X1..X(i-1) are all nullable variables, stopping at (but
// including) the first Xi that is a terminal or a non-nullable variable:
// nothing past that point can ever be the first symbol matched. Variable
// contributions become edges of a dependency graph; closure.Compute
// resolves the fixed point (including any cycles) in one pass.
func First(g Grammar, nullable []bool) TerminalSets {
	varCount := g.VariableCount()
	values := make([]set.Set[int], varCount)
	deps := make([][]int, varCount)
	for v := range values {
		values[v] = set.New[int]()
	}

	for _, p := range g.Productions() {
		for _, sym := range p.RHS {
			if sym.IsTerminal() {
				values[p.LHS].Add(sym.Index())
				break
			}
			b := sym.Index()
			deps[p.LHS] = append(deps[p.LHS], b)
			if !nullable[b] {
				break
			}
		}
	}

	closure.Compute(values, func(x int) []int { return deps[x] }, func(dst, src *set.Set[int]) {
		dst.AddAll(*src)
	})

	perVariable := make([][]int, varCount)
	for v, s := range values {
		perVariable[v] = set.Sorted(s)
	}
	return buildTerminalSets(perVariable)
}
