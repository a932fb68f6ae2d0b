package table_test

import (
	"testing"

	"github.com/dekarrin/lrgen/grammar"
	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/parse"
	"github.com/dekarrin/lrgen/table"
	"github.com/stretchr/testify/assert"
)

// jsonGrammar is a JSON-like worked example larger than the arithmetic and
// balanced-parens fixtures: Value, Object, Members, Member, Array, Elements,
// with terminals { } [ ] , : string number true false null indexed 0..10.
func jsonGrammar(t *testing.T) grammar.Grammar {
	t.Helper()

	const (
		lbrace = iota
		rbrace
		lbracket
		rbracket
		comma
		colon
		str
		number
		trueTok
		falseTok
		nullTok
	)
	const (
		value = iota
		object
		members
		member
		array
		elements
	)

	b := grammar.NewBuilder()
	b.Rule( // Value -> Object | Array | string | number | true | false | null
		[]grammar.Symbol{grammar.Var(object)},
		[]grammar.Symbol{grammar.Var(array)},
		[]grammar.Symbol{grammar.Term(str)},
		[]grammar.Symbol{grammar.Term(number)},
		[]grammar.Symbol{grammar.Term(trueTok)},
		[]grammar.Symbol{grammar.Term(falseTok)},
		[]grammar.Symbol{grammar.Term(nullTok)},
	)
	b.Rule( // Object -> { Members } | { }
		[]grammar.Symbol{grammar.Term(lbrace), grammar.Var(members), grammar.Term(rbrace)},
		[]grammar.Symbol{grammar.Term(lbrace), grammar.Term(rbrace)},
	)
	b.Rule( // Members -> Members , Member | Member
		[]grammar.Symbol{grammar.Var(members), grammar.Term(comma), grammar.Var(member)},
		[]grammar.Symbol{grammar.Var(member)},
	)
	b.Rule( // Member -> string : Value
		[]grammar.Symbol{grammar.Term(str), grammar.Term(colon), grammar.Var(value)},
	)
	b.Rule( // Array -> [ Elements ] | [ ]
		[]grammar.Symbol{grammar.Term(lbracket), grammar.Var(elements), grammar.Term(rbracket)},
		[]grammar.Symbol{grammar.Term(lbracket), grammar.Term(rbracket)},
	)
	b.Rule( // Elements -> Elements , Value | Value
		[]grammar.Symbol{grammar.Var(elements), grammar.Term(comma), grammar.Var(value)},
		[]grammar.Symbol{grammar.Var(value)},
	)

	g, err := b.Build()
	if !assert.New(t).NoError(err) {
		t.FailNow()
	}
	return g
}

type intSource struct {
	toks []int
	i    int
}

func (s *intSource) HasNext() bool { return s.i < len(s.toks) }
func (s *intSource) Next() (int, error) {
	v := s.toks[s.i]
	s.i++
	return v, nil
}

func Test_LALR1Construct_jsonGrammar_noConflicts(t *testing.T) {
	assert := assert.New(t)

	g := jsonGrammar(t)
	tbl, err := table.LALR1Construct(g, func(c laction.Conflict) (laction.Action, error) {
		t.Fatalf("unexpected conflict: %s", c)
		return laction.Action{}, nil
	})
	if !assert.NoError(err) {
		return
	}

	assert.Greater(tbl.States(), 0)
	assert.Len(tbl.Reductions(), g.ProductionCount())
}

func Test_LALR1Construct_jsonGrammar_parsesNestedDocument(t *testing.T) {
	assert := assert.New(t)

	g := jsonGrammar(t)
	tbl, err := table.LALR1Construct(g, func(c laction.Conflict) (laction.Action, error) {
		t.Fatalf("unexpected conflict: %s", c)
		return laction.Action{}, nil
	})
	if !assert.NoError(err) {
		return
	}

	const (
		lbrace = iota
		rbrace
		lbracket
		rbracket
		comma
		colon
		str
		number
		trueTok
		falseTok
		nullTok
	)

	// {"a": [1, 2, {"b": true}]}
	toks := []int{
		lbrace, str, colon, lbracket,
		number, comma, number, comma,
		lbrace, str, colon, trueTok, rbrace,
		rbracket, rbrace,
	}

	d := parse.New[int](tbl, &intSource{toks: toks}, func(tok int) int { return tok })
	for {
		_, ok := d.Next()
		if !ok {
			break
		}
	}
	assert.NoError(d.Err())
}
