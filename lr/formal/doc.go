/*
Package formal reports formal properties of a grammar's language: its class in
the Chomsky hierarchy, the closure properties of that class, which problems are
decidable for it, and whether the language is empty or finite.

Emptiness and finiteness are computed from a static grammar analysis (see
lr.Analysis); the remaining properties follow from the language class.

    ga := lr.NewAnalysis(g)
    err := formal.Report(os.Stdout, ga)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package formal

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrpda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrpda.lr")
}
