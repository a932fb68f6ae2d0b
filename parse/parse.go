// Package parse drives a stack-based LR parse against a table.Table,
// yielding one Event per shift or reduce. It holds no parse-tree logic of
// its own; callers build whatever result they need from the event stream,
// the way the teacher's own lrParser builds a types.ParseTree by reacting to
// the same two cases.
package parse

import (
	"fmt"

	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/lrerrors"
	"github.com/dekarrin/lrgen/table"
)

// TokenSource is the caller-supplied input: a lazily or eagerly loaded
// stream of tokens. Next reports a read failure as a non-nil error; it must
// not be called once HasNext reports false.
type TokenSource[T any] interface {
	HasNext() bool
	Next() (T, error)
}

// EventKind distinguishes the two events a Driver can emit.
type EventKind int

const (
	Shift EventKind = iota
	Reduce
)

func (k EventKind) String() string {
	if k == Shift {
		return "shift"
	}
	return "reduce"
}

// Event is one step of a parse: either a token being shifted onto the
// stack, or a production's RHS being collapsed into its LHS.
type Event[T any] struct {
	Kind EventKind

	// Token is the shifted token; valid when Kind == Shift.
	Token T

	// Var, ChildCount and Production describe the reduction; valid when
	// Kind == Reduce.
	Var        int
	ChildCount int
	Production int
}

func (e Event[T]) String() string {
	if e.Kind == Shift {
		return fmt.Sprintf("shift %v", e.Token)
	}
	return fmt.Sprintf("reduce V%d <- %d children (p%d)", e.Var, e.ChildCount, e.Production)
}

// Driver is a stack-based event iterator over a table.Table: call Next
// repeatedly until it returns false, then check Err for the reason
// iteration stopped (nil means the input was accepted).
type Driver[T any] struct {
	table    table.Table
	tokens   TokenSource[T]
	classify func(T) int
	trace    func(string)

	states      []int
	current     T
	haveCurrent bool
	pending     laction.Action
	step        int
	done        bool
	err         error
}

// New returns a Driver ready to parse tokens against tbl. classify maps a
// token to its terminal index; it is never called on end-of-input.
func New[T any](tbl table.Table, tokens TokenSource[T], classify func(T) int) *Driver[T] {
	return &Driver[T]{
		table:    tbl,
		tokens:   tokens,
		classify: classify,
		pending:  laction.Action{Kind: laction.Shift, State: table.StartState},
	}
}

// RegisterTraceListener installs fn to receive a line of text for every
// state-stack transition. Passing nil disables tracing. Matches the
// teacher's RegisterTraceListener naming for the same purpose.
func (d *Driver[T]) RegisterTraceListener(fn func(string)) {
	d.trace = fn
}

// Err returns the error that ended iteration, or nil if the input was
// accepted (or no Next call has returned false yet).
func (d *Driver[T]) Err() error {
	return d.err
}

// Next advances the parse by one event and reports whether an event was
// produced. It returns false once the input is accepted or a parse error is
// hit; Err distinguishes the two. Next must not be called again after it
// has returned false.
func (d *Driver[T]) Next() (Event[T], bool) {
	if d.done {
		return Event[T]{}, false
	}

	for {
		action := d.pending

		switch action.Kind {
		case laction.Accept:
			d.done = true
			return Event[T]{}, false

		case laction.Invalid:
			d.err = lrerrors.NewInvalidAction(d.step, d.topState(), int(d.currentWord()))
			d.done = true
			return Event[T]{}, false

		case laction.Shift:
			var ev Event[T]
			emit := d.haveCurrent
			if emit {
				ev = Event[T]{Kind: Shift, Token: d.current}
			}

			if err := d.pull(); err != nil {
				d.err = err
				d.done = true
				return Event[T]{}, false
			}

			d.states = append(d.states, action.State)
			d.step++
			d.notifyf("shift: push state %d", action.State)
			d.pending = d.table.Action(action.State, d.currentWord())

			if emit {
				return ev, true
			}
			// Bootstrap iteration: no current word existed yet to shift,
			// so there is nothing to emit. Keep going internally instead
			// of surfacing an empty event.
			continue

		case laction.Reduce:
			red := d.table.Reduction(action.Production)
			d.states = d.states[:len(d.states)-red.RHSLen]
			q := d.topState()

			target, ok := d.table.Goto(q, red.Var)
			if !ok {
				d.err = lrerrors.NewInvalidGoto(d.step, q, red.Var)
				d.done = true
				return Event[T]{}, false
			}

			d.states = append(d.states, target)
			d.step++
			d.notifyf("reduce p%d: push state %d", action.Production, target)
			d.pending = d.table.Action(target, d.currentWord())

			return Event[T]{
				Kind: Reduce, Var: red.Var, ChildCount: red.RHSLen, Production: action.Production,
			}, true
		}
	}
}

// pull advances d.current from the token source, clearing haveCurrent at
// end of input instead of leaving a stale token in place.
func (d *Driver[T]) pull() error {
	if !d.tokens.HasNext() {
		var zero T
		d.current = zero
		d.haveCurrent = false
		return nil
	}
	tok, err := d.tokens.Next()
	if err != nil {
		return lrerrors.NewInputError(err)
	}
	d.current = tok
	d.haveCurrent = true
	return nil
}

// currentWord returns the lookahead class of the current token, or
// EndOfInput if the source is exhausted.
func (d *Driver[T]) currentWord() laction.Lookahead {
	if !d.haveCurrent {
		return laction.EndOfInput
	}
	return laction.Lookahead(d.classify(d.current))
}

// topState returns the state on top of the stack, or StartState if the
// stack is (momentarily, pre-bootstrap) empty.
func (d *Driver[T]) topState() int {
	if len(d.states) == 0 {
		return table.StartState
	}
	return d.states[len(d.states)-1]
}

func (d *Driver[T]) notifyf(format string, args ...interface{}) {
	if d.trace == nil {
		return
	}
	d.trace(fmt.Sprintf(format, args...))
}
