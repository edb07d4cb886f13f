package lr

import "fmt"

// ActionKind is the kind of an ACTION table entry.
type ActionKind uint8

// Kinds of parser actions. ErrorAction is the zero value; parsers treat an
// explicit ErrorAction exactly like a missing table entry.
const (
	ErrorAction ActionKind = iota
	Shift
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	}
	return "error"
}

// Action is an entry of an ACTION table. Target is the state to shift to for
// Shift actions and the production ID for Reduce actions.
type Action struct {
	Kind   ActionKind
	Target int
}

// ShiftTo creates a shift action.
func ShiftTo(state int) Action {
	return Action{Kind: Shift, Target: state}
}

// ReduceBy creates a reduce action for a production ID.
func ReduceBy(production int) Action {
	return Action{Kind: Reduce, Target: production}
}

// AcceptAction creates an accept action.
func AcceptAction() Action {
	return Action{Kind: Accept}
}

// String renders an action in the usual short notation: s4, r2, acc, err.
func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("s%d", a.Target)
	case Reduce:
		return fmt.Sprintf("r%d", a.Target)
	case Accept:
		return "acc"
	}
	return "err"
}

// Actions are stored in sparse matrices as int32: the lower 2 bits hold the
// kind, the rest holds the target.
func (a Action) encode() int32 {
	return int32(a.Target)<<2 | int32(a.Kind)
}

func decodeAction(v int32) Action {
	return Action{Kind: ActionKind(v & 3), Target: int(v >> 2)}
}
