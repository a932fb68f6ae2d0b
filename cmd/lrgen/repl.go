package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/lrgen/lrtoml"
	"github.com/dekarrin/lrgen/table"
)

// runREPL reads whitespace-separated token lines from an interactive
// readline session and drives tbl against each one in turn, printing the
// resulting Shift/Reduce events (or the rejection reason) before
// prompting again. Typing "quit" or "exit", or sending EOF/interrupt, ends
// the session.
func runREPL(tbl table.Table, g lrtoml.Grammar) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "lrgen> ",
	})
	if err != nil {
		return fmt.Errorf("start readline session: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if err := parseTokens(tbl, g, strings.Fields(line)); err != nil {
			fmt.Fprintf(os.Stderr, "rejected: %s\n", err)
		}
	}
}
