// Package lrtoml loads grammar definitions for the demo CLI and server from
// a small TOML schema, the way internal/tqw loads TunaQuest world files:
// decode into a marshaled shape first, then validate and translate into the
// library's own types.
package lrtoml

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/lrgen/grammar"
)

// ruleFile is one [[grammar.rule]] table: a variable name and its ordered
// alternatives, each alternative an ordered list of symbol names. A symbol
// name matching an entry in the file's terminal list is a terminal; any
// other name must be another rule's variable name; an empty alternative
// list entry (`[]`) is an epsilon production.
type ruleFile struct {
	Variable string     `toml:"variable"`
	Alts     [][]string `toml:"alts"`
}

// grammarFile is the [grammar] table: the terminal vocabulary, in the order
// their terminal indices are assigned, followed by the rules.
type grammarFile struct {
	Terminals []string   `toml:"terminals"`
	Rules     []ruleFile `toml:"rule"`
}

// file is the top-level TOML document shape.
type file struct {
	Format  string      `toml:"format"`
	Type    string      `toml:"type"`
	Grammar grammarFile `toml:"grammar"`
}

// Grammar is a decoded grammar definition: the built Grammar plus the
// terminal names in index order, so a caller (the REPL, the server) can
// classify free-form token text back into terminal indices.
type Grammar struct {
	Grammar   grammar.Grammar
	Terminals []string
}

// ClassOf returns the terminal index for name, or -1 if name is not one of
// g's terminals.
func (g Grammar) ClassOf(name string) int {
	for i, t := range g.Terminals {
		if t == name {
			return i
		}
	}
	return -1
}

// LoadFile reads and parses the grammar definition at path.
func LoadFile(path string) (Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grammar{}, fmt.Errorf("read grammar file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and builds the grammar definition in data.
func Parse(data []byte) (Grammar, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return Grammar{}, fmt.Errorf("decode grammar file: %w", err)
	}

	varIndex := make(map[string]int, len(f.Grammar.Rules))
	for i, r := range f.Grammar.Rules {
		varIndex[r.Variable] = i
	}
	termIndex := make(map[string]int, len(f.Grammar.Terminals))
	for i, name := range f.Grammar.Terminals {
		termIndex[name] = i
	}

	b := grammar.NewBuilder()
	for _, r := range f.Grammar.Rules {
		var alts [][]grammar.Symbol
		for _, alt := range r.Alts {
			var rhs []grammar.Symbol
			for _, name := range alt {
				if t, ok := termIndex[name]; ok {
					rhs = append(rhs, grammar.Term(t))
					continue
				}
				v, ok := varIndex[name]
				if !ok {
					return Grammar{}, fmt.Errorf("rule %q: symbol %q is neither a declared terminal nor a rule", r.Variable, name)
				}
				rhs = append(rhs, grammar.Var(v))
			}
			alts = append(alts, rhs)
		}
		b.Rule(alts...)
	}

	g, err := b.Build()
	if err != nil {
		return Grammar{}, fmt.Errorf("build grammar: %w", err)
	}

	return Grammar{Grammar: g, Terminals: f.Grammar.Terminals}, nil
}
