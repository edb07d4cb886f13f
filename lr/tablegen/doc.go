/*
Package tablegen generates SLR(1) decision tables from a grammar.

Table generation is a collaborator of the parsing engine, not a part of it:
parsers in package lr/pda work with any implementation of lr.Tables, including
hand-written or partial tables. This package provides the classic construction
of the characteristic finite state machine (CFSM, the LR(0) state diagram) and
derives ACTION and GOTO entries from it, using FOLLOW-sets as lookahead.

	g, _ := b.Grammar()
	gen := tablegen.NewGenerator(lr.NewAnalysis(g))
	table, err := gen.Build()
	if err != nil {
		// err is a *ConflictError if g is not SLR(1)
	}

Full canonical LR(1) item-set construction is not supported.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tablegen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrpda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrpda.lr")
}
