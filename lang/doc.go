/*
Package lang defines a small imperative language with Python-like syntax and
wires it to the table-driven parser of package lr/pda.

The language knows assignments, print statements, conditionals (if, elif,
else), while and for loops, arithmetic and comparison expressions, list
literals and the calls range(…) and len(…). Blocks are delimited by
indentation:

	n = 10
	for i in range(n):
	    if i % 2 == 0:
	        print(i)

Package lang provides

- a lexer, built with lexmachine, producing INDENT and DEDENT tokens,

- a classifier mapping tokens to terminal symbols,

- the grammar of the language together with a complete SLR(1) table, generated
on first use,

- two hand-written tables: the (partial) demonstration table of a simplified
statement grammar, and a complete table for single assignments.

	accepted, p, err := lang.Parse("x = 5")
	fmt.Println(p.Trace())

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrpda.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrpda.scanner")
}
