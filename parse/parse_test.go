package parse

import (
	"testing"

	"github.com/dekarrin/lrgen/grammar"
	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/table"
	"github.com/stretchr/testify/assert"
)

// sliceSource is a TokenSource[int] over a fixed slice, token value and
// terminal class both being the int itself.
type sliceSource struct {
	toks []int
	i    int
}

func (s *sliceSource) HasNext() bool { return s.i < len(s.toks) }

func (s *sliceSource) Next() (int, error) {
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func identity(t int) int { return t }

// parenGrammar builds S -> S A | A, A -> ( S ) | ( ), terminals 0='(',
// 1=')', in declaration order p0=S->SA, p1=S->A, p2=A->(S), p3=A->().
func parenGrammar(t *testing.T) grammar.Grammar {
	t.Helper()
	const (
		s = iota
		a
	)
	b := grammar.NewBuilder()
	b.Rule(
		[]grammar.Symbol{grammar.Var(s), grammar.Var(a)},
		[]grammar.Symbol{grammar.Var(a)},
	)
	b.Rule(
		[]grammar.Symbol{grammar.Term(0), grammar.Var(s), grammar.Term(1)},
		[]grammar.Symbol{grammar.Term(0), grammar.Term(1)},
	)
	g, err := b.Build()
	if !assert.New(t).NoError(err) {
		t.FailNow()
	}
	return g
}

func noConflicts(t *testing.T) table.Resolver {
	return func(c laction.Conflict) (laction.Action, error) {
		t.Fatalf("unexpected conflict: %s", c)
		return laction.Action{}, nil
	}
}

func Test_Driver_specificParse_doubleNestedParens(t *testing.T) {
	assert := assert.New(t)

	g := parenGrammar(t)
	tbl, err := table.LR1Construct(g, noConflicts(t))
	if !assert.NoError(err) {
		return
	}

	d := New[int](tbl, &sliceSource{toks: []int{0, 0, 1, 1}}, identity)

	var got []Event[int]
	for {
		ev, ok := d.Next()
		if !ok {
			break
		}
		got = append(got, ev)
	}
	if !assert.NoError(d.Err()) {
		return
	}

	want := []Event[int]{
		{Kind: Shift, Token: 0},
		{Kind: Shift, Token: 0},
		{Kind: Shift, Token: 1},
		{Kind: Reduce, Var: 1, ChildCount: 2, Production: 3},
		{Kind: Reduce, Var: 0, ChildCount: 1, Production: 1},
		{Kind: Shift, Token: 1},
		{Kind: Reduce, Var: 1, ChildCount: 3, Production: 2},
		{Kind: Reduce, Var: 0, ChildCount: 1, Production: 1},
	}
	assert.Equal(want, got)
}

// isBalanced reports whether toks (0='(', 1=')') is a nonempty balanced
// parenthesis string.
func isBalanced(toks []int) bool {
	if len(toks) == 0 {
		return false
	}
	depth := 0
	for _, c := range toks {
		if c == 0 {
			depth++
		} else {
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func runAccepts(tbl table.Table, toks []int) bool {
	d := New[int](tbl, &sliceSource{toks: toks}, identity)
	for {
		_, ok := d.Next()
		if !ok {
			break
		}
	}
	return d.Err() == nil
}

func Test_Driver_parenGrammar_exhaustiveUpToLength12(t *testing.T) {
	assert := assert.New(t)

	g := parenGrammar(t)
	tbl, err := table.LR1Construct(g, noConflicts(t))
	if !assert.NoError(err) {
		return
	}

	for length := 1; length <= 12; length++ {
		total := 1 << length
		for bits := 0; bits < total; bits++ {
			toks := make([]int, length)
			for i := 0; i < length; i++ {
				if bits&(1<<i) != 0 {
					toks[i] = 1
				} else {
					toks[i] = 0
				}
			}
			want := isBalanced(toks)
			got := runAccepts(tbl, toks)
			if want != got {
				t.Fatalf("toks=%v: want accept=%v, got=%v", toks, want, got)
			}
		}
	}
}

func Test_Driver_emptyInput_nullableStart_singleReduceChain(t *testing.T) {
	assert := assert.New(t)

	b := grammar.NewBuilder()
	b.Rule([]grammar.Symbol{}) // S -> ε
	g, err := b.Build()
	if !assert.NoError(err) {
		return
	}

	tbl, err := table.LR1Construct(g, noConflicts(t))
	if !assert.NoError(err) {
		return
	}

	d := New[int](tbl, &sliceSource{}, identity)

	var events []Event[int]
	for {
		ev, ok := d.Next()
		if !ok {
			break
		}
		events = append(events, ev)
	}
	assert.NoError(d.Err())

	assert.Len(events, 1)
	assert.Equal(Reduce, events[0].Kind)
	assert.Equal(0, events[0].ChildCount)

	for _, ev := range events {
		assert.NotEqual(Shift, ev.Kind)
	}
}

func Test_Driver_invalidInput_reportsInvalidAction(t *testing.T) {
	assert := assert.New(t)

	g := parenGrammar(t)
	tbl, err := table.LR1Construct(g, noConflicts(t))
	if !assert.NoError(err) {
		return
	}

	d := New[int](tbl, &sliceSource{toks: []int{1}}, identity) // ")" alone
	for {
		_, ok := d.Next()
		if !ok {
			break
		}
	}
	assert.Error(d.Err())
}
