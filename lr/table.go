package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lrpda/lr/sparse"
)

// Tables is the lookup interface of LR decision tables. Parsers depend on this
// interface only.
//
// Action returns the ACTION entry for (state, terminal); ok is false if the table
// has no entry. Goto returns the GOTO entry for (state, non-terminal).
//
// Implementations must be safe for concurrent reads.
type Tables interface {
	Action(state int, terminal string) (a Action, ok bool)
	Goto(state int, nonterminal string) (target int, ok bool)
}

// ActionEntry is a single non-empty ACTION cell of a state.
type ActionEntry struct {
	Terminal string
	Action   Action
}

// GotoEntry is a single non-empty GOTO cell of a state.
type GotoEntry struct {
	Nonterminal string
	Target      int
}

// --- Table builder ---------------------------------------------------------

type cell struct {
	state  int
	symbol string
}

// TableBuilder collects ACTION and GOTO entries for a grammar. Every cell may
// hold a single entry only; setting a different entry for an occupied cell is a
// conflict and will make Table() fail.
type TableBuilder struct {
	g       *Grammar
	actions map[cell]Action
	gotos   map[cell]int
	err     error
}

// NewTableBuilder creates an empty table builder for grammar g.
func NewTableBuilder(g *Grammar) *TableBuilder {
	return &TableBuilder{
		g:       g,
		actions: make(map[cell]Action),
		gotos:   make(map[cell]int),
	}
}

// SetAction sets ACTION[state, terminal] = a.
func (tb *TableBuilder) SetAction(state int, terminal string, a Action) *TableBuilder {
	if tb.err != nil {
		return tb
	}
	switch {
	case state < 0:
		tb.err = fmt.Errorf("ACTION[%d, %s]: negative state", state, terminal)
	case !tb.g.IsTerminal(terminal):
		tb.err = fmt.Errorf("ACTION[%d, %s]: %q is not a terminal of grammar %s", state, terminal, terminal, tb.g.Name)
	case a.Target < 0:
		tb.err = fmt.Errorf("ACTION[%d, %s]: negative target in %v", state, terminal, a)
	}
	if tb.err != nil {
		return tb
	}
	c := cell{state, terminal}
	if old, ok := tb.actions[c]; ok && old != a {
		tb.err = fmt.Errorf("conflict at ACTION[%d, %s]: %v / %v", state, terminal, old, a)
		return tb
	}
	tb.actions[c] = a
	return tb
}

// SetGoto sets GOTO[state, nonterminal] = target.
func (tb *TableBuilder) SetGoto(state int, nonterminal string, target int) *TableBuilder {
	if tb.err != nil {
		return tb
	}
	switch {
	case state < 0 || target < 0:
		tb.err = fmt.Errorf("GOTO[%d, %s] = %d: negative state", state, nonterminal, target)
	case !tb.g.IsNonterminal(nonterminal):
		tb.err = fmt.Errorf("GOTO[%d, %s]: %q is not a non-terminal of grammar %s", state, nonterminal, nonterminal, tb.g.Name)
	}
	if tb.err != nil {
		return tb
	}
	c := cell{state, nonterminal}
	if old, ok := tb.gotos[c]; ok && old != target {
		tb.err = fmt.Errorf("conflict at GOTO[%d, %s]: %d / %d", state, nonterminal, old, target)
		return tb
	}
	tb.gotos[c] = target
	return tb
}

// RemoveAction clears ACTION[state, terminal].
func (tb *TableBuilder) RemoveAction(state int, terminal string) *TableBuilder {
	delete(tb.actions, cell{state, terminal})
	return tb
}

// RemoveGoto clears GOTO[state, nonterminal].
func (tb *TableBuilder) RemoveGoto(state int, nonterminal string) *TableBuilder {
	delete(tb.gotos, cell{state, nonterminal})
	return tb
}

// Table freezes the collected entries into an immutable table.
func (tb *TableBuilder) Table() (*Table, error) {
	if tb.err != nil {
		return nil, tb.err
	}
	t := &Table{
		g:            tb.g,
		terminals:    tb.g.Terminals(),
		nonterminals: tb.g.Nonterminals(),
		termCol:      make(map[string]int),
		ntCol:        make(map[string]int),
	}
	for j, name := range t.terminals {
		t.termCol[name] = j
	}
	for j, name := range t.nonterminals {
		t.ntCol[name] = j
	}
	rows := 0
	seen := make(map[int]bool)
	for c := range tb.actions {
		rows, seen[c.state] = maxInt(rows, c.state+1), true
	}
	for c := range tb.gotos {
		rows, seen[c.state] = maxInt(rows, c.state+1), true
	}
	t.actions = sparse.NewIntMatrix(rows, len(t.terminals), sparse.DefaultNullValue)
	t.gotos = sparse.NewIntMatrix(rows, len(t.nonterminals), sparse.DefaultNullValue)
	for c, a := range tb.actions {
		t.actions.Set(c.state, t.termCol[c.symbol], a.encode())
	}
	for c, target := range tb.gotos {
		t.gotos.Set(c.state, t.ntCol[c.symbol], int32(target))
	}
	for s := range seen {
		t.states = append(t.states, s)
	}
	sort.Ints(t.states)
	tracer().Infof("table for %s: %d states, %d ACTION and %d GOTO entries", t.g.Name,
		len(t.states), t.actions.ValueCount(), t.gotos.ValueCount())
	return t, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// --- Table -----------------------------------------------------------------

// Table is an immutable pair of ACTION and GOTO tables for a grammar, stored as
// sparse matrices. A table may be partial; lookups for cells without an entry
// report ok = false. Tables are safe for concurrent use.
type Table struct {
	g            *Grammar
	terminals    []string
	nonterminals []string
	termCol      map[string]int
	ntCol        map[string]int
	actions      *sparse.IntMatrix
	gotos        *sparse.IntMatrix
	states       []int
}

var _ Tables = (*Table)(nil)

// Action is part of interface Tables.
func (t *Table) Action(state int, terminal string) (Action, bool) {
	j, ok := t.termCol[terminal]
	if !ok || state < 0 || state >= t.actions.M() {
		return Action{}, false
	}
	v := t.actions.Value(state, j)
	if v == t.actions.NullValue() {
		return Action{}, false
	}
	return decodeAction(v), true
}

// Goto is part of interface Tables.
func (t *Table) Goto(state int, nonterminal string) (int, bool) {
	j, ok := t.ntCol[nonterminal]
	if !ok || state < 0 || state >= t.gotos.M() {
		return 0, false
	}
	v := t.gotos.Value(state, j)
	if v == t.gotos.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Grammar returns the grammar this table has been built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// States returns the sorted list of states which have at least one entry.
func (t *Table) States() []int {
	return append([]int(nil), t.states...)
}

// ActionEntries returns the ACTION entries of a state, in terminal order.
func (t *Table) ActionEntries(state int) []ActionEntry {
	var entries []ActionEntry
	if state < 0 || state >= t.actions.M() {
		return entries
	}
	t.actions.Row(state, func(j int, a, _ int32) {
		entries = append(entries, ActionEntry{Terminal: t.terminals[j], Action: decodeAction(a)})
	})
	return entries
}

// GotoEntries returns the GOTO entries of a state, in non-terminal order.
func (t *Table) GotoEntries(state int) []GotoEntry {
	var entries []GotoEntry
	if state < 0 || state >= t.gotos.M() {
		return entries
	}
	t.gotos.Row(state, func(j int, v, _ int32) {
		entries = append(entries, GotoEntry{Nonterminal: t.nonterminals[j], Target: int(v)})
	})
	return entries
}

// Builder returns a new table builder, pre-filled with all entries of t. Use it
// to derive variants of a table.
func (t *Table) Builder() *TableBuilder {
	tb := NewTableBuilder(t.g)
	for _, s := range t.states {
		for _, e := range t.ActionEntries(s) {
			tb.SetAction(s, e.Terminal, e.Action)
		}
		for _, e := range t.GotoEntries(s) {
			tb.SetGoto(s, e.Nonterminal, e.Target)
		}
	}
	return tb
}

type tableSnapshot struct {
	Grammar []string
	Actions []string
	Gotos   []string
}

// Fingerprint returns a hash over the grammar and all table entries.
func (t *Table) Fingerprint() (string, error) {
	snap := tableSnapshot{}
	for _, p := range t.g.productions {
		snap.Grammar = append(snap.Grammar, p.String())
	}
	for _, s := range t.states {
		for _, e := range t.ActionEntries(s) {
			snap.Actions = append(snap.Actions, fmt.Sprintf("%d/%s/%v", s, e.Terminal, e.Action))
		}
		for _, e := range t.GotoEntries(s) {
			snap.Gotos = append(snap.Gotos, fmt.Sprintf("%d/%s/%d", s, e.Nonterminal, e.Target))
		}
	}
	return structhash.Hash(snap, 1)
}

// --- Integrity checks ------------------------------------------------------

// TableDefect describes an inconsistency between a table and its grammar.
type TableDefect struct {
	State  int
	Symbol string
	Entry  string
	Reason string
}

func (d TableDefect) String() string {
	return fmt.Sprintf("[%d, %s] = %s: %s", d.State, d.Symbol, d.Entry, d.Reason)
}

// TableDefects is the error type returned by table integrity checks.
type TableDefects []TableDefect

func (d TableDefects) Error() string {
	lines := make([]string, len(d))
	for i, defect := range d {
		lines[i] = defect.String()
	}
	return fmt.Sprintf("%d table defect(s): %s", len(d), strings.Join(lines, "; "))
}

// Validate checks that every reduce action references a production of the grammar
// and that accept actions are keyed by the end-of-input terminal. Partial tables
// pass this check.
func (t *Table) Validate() error {
	return t.validate(false)
}

// ValidateComplete additionally checks that every state reachable by a shift or
// goto has at least one ACTION entry.
func (t *Table) ValidateComplete() error {
	return t.validate(true)
}

func (t *Table) validate(complete bool) error {
	var defects TableDefects
	hasRow := make(map[int]bool)
	for _, s := range t.states {
		if len(t.ActionEntries(s)) > 0 {
			hasRow[s] = true
		}
	}
	for _, s := range t.states {
		for _, e := range t.ActionEntries(s) {
			a := e.Action
			switch a.Kind {
			case Reduce:
				if _, ok := t.g.Production(a.Target); !ok {
					defects = append(defects, TableDefect{s, e.Terminal, a.String(), "no such production"})
				}
			case Accept:
				if e.Terminal != EOFName {
					defects = append(defects, TableDefect{s, e.Terminal, a.String(), "accept without end of input"})
				}
			case Shift:
				if complete && !hasRow[a.Target] {
					defects = append(defects, TableDefect{s, e.Terminal, a.String(), "shift to state without actions"})
				}
			}
		}
		if !complete {
			continue
		}
		for _, e := range t.GotoEntries(s) {
			if !hasRow[e.Target] {
				defects = append(defects, TableDefect{s, e.Nonterminal, fmt.Sprintf("%d", e.Target), "goto state without actions"})
			}
		}
	}
	if len(defects) > 0 {
		return defects
	}
	return nil
}
