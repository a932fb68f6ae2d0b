/*
Lrgen builds an LR(1) or LALR(1) parsing table from a TOML grammar
definition and either parses a single whitespace-separated token line or
drives an interactive REPL against the resulting table.

Usage:

	lrgen [flags]

The flags are:

	-g, --grammar FILE
		The TOML grammar definition to load. Defaults to "grammar.toml" in
		the current working directory.

	-s, --strategy NAME
		The construction strategy to use: "lr1" or "lalr1". Defaults to
		"lalr1".

	-i, --input TOKENS
		Whitespace-separated terminal names to parse immediately, using the
		grammar's declared terminal names as token classes.

	-r, --repl
		Start an interactive session after building the table; each line
		read is parsed as its own whitespace-separated token sequence.

Lrgen has no semantic actions and no lexer of its own: every "token" is
just the terminal's declared name, so --input and the REPL can only drive
parses whose alphabet the grammar already names.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/lrtoml"
	"github.com/dekarrin/lrgen/parse"
	"github.com/dekarrin/lrgen/table"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitBuildError indicates the grammar could not be loaded or the
	// table could not be constructed.
	ExitBuildError

	// ExitParseError indicates --input was rejected by the table, or the
	// REPL session could not be run.
	ExitParseError
)

var (
	returnCode int = ExitSuccess

	grammarFile *string = pflag.StringP("grammar", "g", "grammar.toml", "TOML grammar definition to load")
	strategy    *string = pflag.StringP("strategy", "s", "lalr1", "construction strategy: lr1 or lalr1")
	inputLine   *string = pflag.StringP("input", "i", "", "whitespace-separated terminal names to parse immediately")
	replFlag    *bool   = pflag.BoolP("repl", "r", false, "start an interactive session after building the table")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	g, err := lrtoml.LoadFile(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitBuildError
		return
	}

	tbl, err := buildTable(g, *strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitBuildError
		return
	}

	if *inputLine != "" {
		if err := parseTokens(tbl, g, strings.Fields(*inputLine)); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitParseError
			return
		}
	}

	if *replFlag {
		if err := runREPL(tbl, g); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitParseError
			return
		}
	}
}

// buildTable constructs a table via the named strategy. Its resolver never
// guesses at precedence: any conflict it meets is reported as an error,
// since the demo grammar format has no associativity/precedence annotations
// of its own.
func buildTable(g lrtoml.Grammar, strategyName string) (table.Table, error) {
	resolver := func(c laction.Conflict) (laction.Action, error) {
		return laction.Action{}, fmt.Errorf("unresolved %s", c)
	}

	switch strategyName {
	case "lr1":
		return table.LR1Construct(g.Grammar, resolver)
	case "lalr1":
		return table.LALR1Construct(g.Grammar, resolver)
	default:
		return table.Table{}, fmt.Errorf("unknown strategy %q (want lr1 or lalr1)", strategyName)
	}
}

// tokenLine is a parse.TokenSource[string] over a fixed, already-split
// token line.
type tokenLine struct {
	toks []string
	i    int
}

func (s *tokenLine) HasNext() bool { return s.i < len(s.toks) }

func (s *tokenLine) Next() (string, error) {
	t := s.toks[s.i]
	s.i++
	return t, nil
}

// parseTokens drives the parser over toks, printing each event, and reports
// an error (the parse error, or an unrecognized terminal name) if the
// parse does not accept.
func parseTokens(tbl table.Table, g lrtoml.Grammar, toks []string) error {
	for _, tok := range toks {
		if g.ClassOf(tok) < 0 {
			return fmt.Errorf("%q is not a declared terminal of this grammar", tok)
		}
	}

	d := parse.New[string](tbl, &tokenLine{toks: toks}, g.ClassOf)
	for {
		ev, ok := d.Next()
		if !ok {
			break
		}
		fmt.Println(ev.String())
	}
	return d.Err()
}
