package grammar

import "github.com/dekarrin/lrgen/lrerrors"

// Builder constructs a Grammar with a fluent interface: each call to Rule
// appends one variable, in call order starting at 0, whose productions are
// the alternatives given to that call. An alternative with no symbols is an
// ε-production.
type Builder struct {
	alts [][][]Symbol
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Rule appends a new variable whose productions are alts, in the order
// given. Returns the Builder for chaining.
func (b *Builder) Rule(alts ...[]Symbol) *Builder {
	cp := make([][]Symbol, len(alts))
	for i, a := range alts {
		rhs := make([]Symbol, len(a))
		copy(rhs, a)
		cp[i] = rhs
	}
	b.alts = append(b.alts, cp)
	return b
}

// Build validates every RHS symbol and, on success, returns the grammar
// with its augmented start production S' -> Var(0) appended as the final
// rule. The augmented start variable is always the highest-indexed
// variable. Returns an *lrerrors.InvalidVariable if any RHS references a
// variable index outside [0, rule_count).
func (b *Builder) Build() (Grammar, error) {
	ruleCount := len(b.alts)

	for v, alts := range b.alts {
		for a, rhs := range alts {
			for pos, sym := range rhs {
				if sym.IsVariable() && (sym.Index() < 0 || sym.Index() >= ruleCount) {
					return Grammar{}, lrerrors.NewInvalidVariable(v, a, pos, sym.Index())
				}
			}
		}
	}

	g := Grammar{
		rules: make([]int, ruleCount+2), // +1 for the augmented start rule, +1 for the closing bound
	}

	maxTerm := -1
	prodIdx := 0
	for v, alts := range b.alts {
		g.rules[v] = prodIdx
		for _, rhs := range alts {
			g.lhs = append(g.lhs, v)
			g.alts = append(g.alts, len(g.symbols))
			g.symbols = append(g.symbols, rhs...)
			for _, sym := range rhs {
				if sym.IsTerminal() && sym.Index() > maxTerm {
					maxTerm = sym.Index()
				}
			}
			prodIdx++
		}
	}

	startVar := ruleCount
	g.rules[startVar] = prodIdx
	g.lhs = append(g.lhs, startVar)
	g.alts = append(g.alts, len(g.symbols))
	g.symbols = append(g.symbols, Var(0))
	prodIdx++

	g.rules[startVar+1] = prodIdx
	g.alts = append(g.alts, len(g.symbols))

	g.wordCount = maxTerm + 1
	g.startVariable = startVar

	return g, nil
}
