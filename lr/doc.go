/*
Package lr implements prerequisites for table-driven LR parsing: production sets,
decision tables and static grammar analysis.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals are identified
by name; the name "$" is reserved for the end-of-input terminal.
Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()  // A  ->  B D
    b.LHS("B").T("b").End()         // B  ->  b
    b.LHS("B").Epsilon()            // B  ->
    b.LHS("D").T("d").End()         // D  ->  d
    g, err := b.Grammar()

The builder adds the augmented start production as production 0. This results in
the following grammar:

    lr.WriteProductions(os.Stdout, g)

    0: S' -> S
    1: S -> A a
    2: A -> B D
    3: B -> b
    4: B -> ε
    5: D -> d

The production list format is stable: ReadProductions will re-create a grammar
with identical productions from it.

Decision Tables

ACTION and GOTO tables are collected with a TableBuilder and frozen into an
immutable Table. Tables may be written by hand, be partial, or be produced by a
table generator (see package lr/tablegen):

    tb := lr.NewTableBuilder(g)
    tb.SetAction(0, "b", lr.ShiftTo(3))
    tb.SetGoto(0, "A", 2)
    …
    table, err := tb.Table()

Parsers depend on the Tables interface only, thus any other table implementation
may be substituted.

Static Grammar Analysis

NewAnalysis computes nullable nonterminals, FIRST and FOLLOW sets, and the sets of
generating and reachable nonterminals.

    ga := lr.NewAnalysis(g)
    fmt.Printf("FIRST(S) = %v", ga.First("S"))   // [b d]

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrpda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrpda.lr")
}
