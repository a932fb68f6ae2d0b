package grammar

// Nullable computes, for every variable, whether it derives the empty
// string. The result is indexed by variable.
//
// This is a simple fixed-point, not routed through the closure package: the
// "successor" relation among variables changes shape as nullability is
// discovered (a production only contributes once its whole prefix is known
// nullable), so there is no static dependency graph to hand to a single
// transitive-closure pass the way there is for FIRST and FOLLOW.
func Nullable(g Grammar) []bool {
	nullable := make([]bool, g.VariableCount())

	for {
		changed := false
		for _, r := range g.Rules() {
			if nullable[r.Variable] {
				continue
			}
			for _, p := range r.Productions {
				if allNullable(p.RHS, nullable) {
					nullable[r.Variable] = true
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
	}

	return nullable
}

func allNullable(rhs []Symbol, nullable []bool) bool {
	for _, sym := range rhs {
		if sym.IsTerminal() {
			return false
		}
		if !nullable[sym.Index()] {
			return false
		}
	}
	return true
}
