/*
Package pda implements a deterministic, table-driven shift-reduce automaton
(the pushdown automaton of an LR parser).

The parser works on explicit ACTION and GOTO tables (interface lr.Tables) and a
stack of alternating grammar symbols and states, with state 0 at the bottom.
It does not know how tables have been constructed: they may be hand-written,
partial, or produced by a table generator such as lr/tablegen.

	p := pda.NewParser(g, table, pda.WithClassifier(myClassifier))
	accepted, err := p.Parse(tokens)
	fmt.Println(p.Trace())

Every step of the automaton is recorded in a trace, before the step mutates the
stack. A rejected input results in a *ParseError. Only errors of kind
ActionMiss are caused by the input; all other kinds report defective tables and
are marked as fatal. Setting the global configuration flag
panic-on-table-defect to true makes the parser panic on fatal errors instead.

The parser does not recover from errors, does not resolve ambiguities, and does
not perform semantic actions on reductions.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pda

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrpda.pda'.
func tracer() tracing.Trace {
	return tracing.Select("lrpda.pda")
}
