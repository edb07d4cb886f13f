/*
Command lrpda parses programs of the small imperative language of package lang
with the table-driven LR automaton and shows what the automaton did.

Usage:

    lrpda [flags] [file …]

Without file arguments lrpda starts an interactive session. Lines are collected
until an empty line is entered, then the collected program is parsed and the
parse trace is printed. Lines starting with a colon are commands:

    :table          print the ACTION/GOTO table in use
    :grammar        print the production set as a tree
    :stack          print the parse stack of the last parse
    :trace          print the trace of the last parse
    :report         print the formal properties of the grammar
    :use <table>    switch tables (generated, demo, assign)
    :lexer <lexer>  switch tokenizers (lang, go)
    :quit           leave

Flags:

    -table   table to start with: generated (default), demo or assign
    -lexer   tokenizer: lang (default) or go; the Go tokenizer knows no
             indentation, so programs with blocks need lang
    -trace   trace level [Debug|Info|Error]
    -grammar print the production set and exit
    -report  print the formal properties of the grammar and exit
    -cfsm    write the characteristic automaton of the generated table in
             Graphviz format to a file

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrpda.pda'.
func tracer() tracing.Trace {
	return tracing.Select("lrpda.pda")
}
