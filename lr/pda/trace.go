package pda

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr"
)

// TraceEntry records a single step of the automaton. It is appended before the
// step mutates the stack, thus Stack shows the configuration the decision has
// been based on (bottom first, states and symbols alternating).
type TraceEntry struct {
	Step      int
	State     int
	Lookahead string    // classified lookahead terminal
	Action    lr.Action // ErrorAction if the table had no entry
	Stack     []string
	Pos       lrpda.Position
	Fallback  bool   // lookahead has been classified by fallback
	Note      string // the production for reduce steps
}

func (e TraceEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "state %d, lookahead '%s', action %s, stack [%s]", e.State,
		e.Lookahead, e.Action, strings.Join(e.Stack, " "))
	if e.Note != "" {
		fmt.Fprintf(&b, " (%s)", e.Note)
	}
	if e.Fallback {
		b.WriteString(" [unclassified]")
	}
	return b.String()
}

// Trace is the append-only record of a parse.
type Trace struct {
	entries []TraceEntry
}

func newTrace(capacity int) *Trace {
	return &Trace{entries: make([]TraceEntry, 0, capacity)}
}

func (t *Trace) append(e TraceEntry) {
	t.entries = append(t.entries, e)
}

// Len returns the number of entries.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of all entries.
func (t *Trace) Entries() []TraceEntry {
	if t == nil {
		return nil
	}
	return append([]TraceEntry(nil), t.entries...)
}

// Last returns the last entry, if any.
func (t *Trace) Last() (TraceEntry, bool) {
	if t.Len() == 0 {
		return TraceEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Lines returns one line of text per entry.
func (t *Trace) Lines() []string {
	lines := make([]string, t.Len())
	for i := range lines {
		lines[i] = t.entries[i].String()
	}
	return lines
}

func (t *Trace) String() string {
	return strings.Join(t.Lines(), "\n")
}

// Fingerprint returns a hash over all entries. Two parses of the same input with
// the same tables produce identical fingerprints.
func (t *Trace) Fingerprint() (string, error) {
	return structhash.Hash(struct{ Entries []string }{t.Lines()}, 1)
}
