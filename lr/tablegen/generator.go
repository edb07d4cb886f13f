package tablegen

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrpda/lr"
)

// Generator is a generator object to construct SLR(1) parser tables.
// Clients usually create a grammar G, then an lr.Analysis for G,
// and then a table generator.
type Generator struct {
	g         *lr.Grammar
	ga        *lr.Analysis
	dfa       *CFSM
	conflicts []Conflict
}

// NewGenerator creates a new table generator for a (previously analysed) grammar.
func NewGenerator(ga *lr.Analysis) *Generator {
	return &Generator{g: ga.Grammar(), ga: ga}
}

// CFSM returns the characteristic finite state machine (CFSM) for the grammar.
// The CFSM will be created, if it has not been constructed previously.
func (gen *Generator) CFSM() *CFSM {
	if gen.dfa == nil {
		gen.dfa = buildCFSM(gen.g)
	}
	return gen.dfa
}

// Conflict is a table cell with more than one candidate action.
type Conflict struct {
	State    int
	Terminal string
	Actions  []lr.Action
}

func (c Conflict) String() string {
	s := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		s[i] = a.String()
	}
	return fmt.Sprintf("ACTION[%d, %s] = %s", c.State, c.Terminal, strings.Join(s, "/"))
}

// ConflictError is returned by Build for grammars which are not SLR(1).
type ConflictError struct {
	Grammar   string
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	s := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		s[i] = c.String()
	}
	return fmt.Sprintf("grammar %s is not SLR(1), %d conflict(s): %s", e.Grammar,
		len(e.Conflicts), strings.Join(s, "; "))
}

// Conflicts returns the conflicts found by the last call to Build.
func (gen *Generator) Conflicts() []Conflict {
	return gen.conflicts
}

type actionCell struct {
	state    int
	terminal string
}

// Build creates ACTION and GOTO tables for the grammar.
//
// For building the ACTION table we iterate over all the states of the CFSM.
// Edges labeled with a terminal produce shift entries, edges labeled with a
// non-terminal produce GOTO entries. If an item's dot is behind the complete
// RHS of a rule, we produce a reduce entry for the rule for each terminal from
// FOLLOW(LHS). The completed start production produces accept on end of input.
//
// Every cell of the result holds a single entry. If the grammar produces more
// than one candidate for a cell, Build returns a *ConflictError listing every
// conflicting cell.
func (gen *Generator) Build() (*lr.Table, error) {
	dfa := gen.CFSM()
	tb := lr.NewTableBuilder(gen.g)
	actions := make(map[actionCell][]lr.Action)
	var order []actionCell
	add := func(state int, terminal string, a lr.Action) {
		c := actionCell{state, terminal}
		for _, other := range actions[c] {
			if other == a {
				return
			}
		}
		if len(actions[c]) == 0 {
			order = append(order, c)
		}
		actions[c] = append(actions[c], a)
	}
	for _, state := range dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, e := range dfa.Edges(state) {
			if e.Label.Terminal {
				add(state.ID, e.Label.Name, lr.ShiftTo(e.To.ID))
			} else {
				tb.SetGoto(state.ID, e.Label.Name, e.To.ID)
			}
		}
		for _, x := range state.items.Values() {
			i := x.(item)
			p, _ := gen.g.Production(i.prod)
			if i.dot < p.Len() {
				continue
			}
			if i.prod == 0 {
				add(state.ID, lr.EOFName, lr.AcceptAction())
				continue
			}
			for _, la := range gen.ga.Follow(p.LHS.Name) {
				tracer().Debugf("    reduce %v on %s", p, la)
				add(state.ID, la, lr.ReduceBy(p.ID))
			}
		}
	}
	gen.conflicts = nil
	for _, c := range order {
		candidates := actions[c]
		if len(candidates) > 1 {
			gen.conflicts = append(gen.conflicts, Conflict{c.state, c.terminal, candidates})
			continue
		}
		tb.SetAction(c.state, c.terminal, candidates[0])
	}
	if len(gen.conflicts) > 0 {
		err := &ConflictError{Grammar: gen.g.Name, Conflicts: gen.conflicts}
		tracer().Errorf("%v", err)
		return nil, err
	}
	return tb.Table()
}
