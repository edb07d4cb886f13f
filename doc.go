/*
Package lrpda is a table-driven shift-reduce parsing toolbox.

LRPDA runs a deterministic push-down automaton over explicit ACTION and GOTO
tables. Tables may be hand-built, partial or generated; the automaton only depends
on a small lookup interface. Package structure is as follows:

■ lr: Package lr holds grammars (production sets), decision tables, the exchange
format for production lists and static grammar analysis.

■ lr/pda: Package pda implements the stack automaton, its trace recorder and the
error taxonomy for rejected input.

■ lr/tablegen: Package tablegen is a pluggable SLR(1) table generator.

■ lr/scanner: Package scanner defines the tokenizer interface and a lexmachine adapter.

■ lr/formal: Package formal reports formal properties of a grammar's language.

■ lang: Package lang is a small imperative language (assignments, conditionals, loops,
expressions, calls) wired to all of the above. Command cmd/lrpda is an interactive
front end for it.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrpda
