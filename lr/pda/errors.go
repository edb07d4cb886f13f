package pda

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lrpda"
)

// ErrorKind classifies the ways a parse may fail.
type ErrorKind int

// Kinds of parse failures. ActionMiss is the only kind caused by the input;
// all other kinds indicate inconsistent tables or grammars.
const (
	ActionMiss     ErrorKind = iota + 1 // no ACTION entry for (state, lookahead): syntax error
	GotoMiss                            // no GOTO entry after a reduction
	StackUnderflow                      // reduction of more symbols than the stack holds
	NoProgress                          // reduction cycle without consuming input
	BadProduction                       // reduce action for a production unknown to the grammar
)

func (k ErrorKind) String() string {
	switch k {
	case ActionMiss:
		return "ActionMiss"
	case GotoMiss:
		return "GotoMiss"
	case StackUnderflow:
		return "StackUnderflow"
	case NoProgress:
		return "NoProgress"
	case BadProduction:
		return "BadProduction"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinel errors, one per ErrorKind. A *ParseError matches its sentinel with
// errors.Is.
var (
	ErrActionMiss     = errors.New("no parser action for lookahead")
	ErrGotoMiss       = errors.New("no GOTO entry for reduced non-terminal")
	ErrStackUnderflow = errors.New("parse stack underflow")
	ErrNoProgress     = errors.New("parser makes no progress")
	ErrBadProduction  = errors.New("reduce by unknown production")
)

func sentinel(k ErrorKind) error {
	switch k {
	case ActionMiss:
		return ErrActionMiss
	case GotoMiss:
		return ErrGotoMiss
	case StackUnderflow:
		return ErrStackUnderflow
	case NoProgress:
		return ErrNoProgress
	case BadProduction:
		return ErrBadProduction
	}
	return nil
}

// ParseError is the error record of a rejected parse.
//
// State and Symbol identify the failing lookup: for ActionMiss the symbol is the
// classified lookahead terminal, for GotoMiss it is the reduced non-terminal, for
// StackUnderflow and BadProduction it is the name of the production's LHS (if
// known). Depth is the number of grammar symbols on the stack, Step the number
// of the trace entry of the failing step.
type ParseError struct {
	Kind   ErrorKind
	State  int
	Symbol string
	Depth  int
	Step   int
	Pos    lrpda.Position // position of the lookahead token
	Lexeme string         // lexeme of the lookahead token
	Detail string
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case ActionMiss:
		msg = fmt.Sprintf("syntax error at %s: unexpected %s %q in state %d", e.Pos, e.Symbol, e.Lexeme, e.State)
	case GotoMiss:
		msg = fmt.Sprintf("table defect: no GOTO[%d, %s]", e.State, e.Symbol)
	default:
		msg = fmt.Sprintf("table defect: %s in state %d", e.Kind, e.State)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("%s (step %d, stack depth %d)", msg, e.Step, e.Depth)
}

// Fatal is true for errors which indicate defective tables or grammars rather
// than erroneous input.
func (e *ParseError) Fatal() bool {
	return e.Kind != ActionMiss
}

// Is makes errors.Is(err, ErrGotoMiss) etc. work.
func (e *ParseError) Is(target error) bool {
	return target != nil && target == sentinel(e.Kind)
}
