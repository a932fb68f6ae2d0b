// Package laction holds the small value types shared between the table
// encoder and the error taxonomy so that neither package has to import the
// other: an ACTION-table cell and a shift/reduce or reduce/reduce conflict
// report are both built from the same Action type. The split mirrors the
// teacher's own internal/ictiobus/types package, which exists for exactly
// this reason (sharing Token/TokenClass between lex, grammar and parse
// without a cycle).
package laction

import "fmt"

// Kind distinguishes the four possible ACTION-table entries.
type Kind int

const (
	Invalid Kind = iota
	Accept
	Shift
	Reduce
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Accept:
		return "accept"
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action is one ACTION-table cell: Invalid, Accept, Shift(State), or
// Reduce(Production).
type Action struct {
	Kind       Kind
	State      int // valid when Kind == Shift
	Production int // valid when Kind == Reduce
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Production)
	default:
		return a.Kind.String()
	}
}

// Equal reports whether two actions denote the same table entry.
func (a Action) Equal(o Action) bool {
	return a == o
}

// ConflictKind distinguishes the two conflict shapes the table encoder can
// report.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict describes a single ACTION-table cell that two distinct actions
// both claim. Word is the lookahead column the conflict occurred on;
// Existing is whichever action was already installed, Incoming is the one
// the table encoder was about to write when it found the slot occupied.
type Conflict struct {
	Kind     ConflictKind
	Word     Lookahead
	Existing Action
	Incoming Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict on %s: %s vs %s", c.Kind, c.Word, c.Existing, c.Incoming)
}

// Lookahead is an optional terminal class: a non-negative terminal index,
// or EndOfInput. End-of-input is never a valid terminal index in a
// grammar, so the two spaces never collide.
type Lookahead int

// EndOfInput denotes the lookahead class for "no more input".
const EndOfInput Lookahead = -1

func (l Lookahead) String() string {
	if l == EndOfInput {
		return "$"
	}
	return fmt.Sprintf("t%d", int(l))
}

// Column returns the ACTION-table column for this lookahead: 0 for
// end-of-input, t+1 for terminal t.
func (l Lookahead) Column() int {
	return int(l) + 1
}
