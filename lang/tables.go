package lang

import (
	"fmt"
	"sync"

	"github.com/npillmayer/lrpda/lr"
	"github.com/npillmayer/lrpda/lr/tablegen"
)

var generated struct {
	once  sync.Once
	table *lr.Table
	err   error
}

// Tables returns the SLR(1) tables for Grammar. They are generated on first use
// and shared afterwards.
func Tables() (*lr.Table, error) {
	generated.once.Do(func() {
		gen := tablegen.NewGenerator(lr.NewAnalysis(Grammar()))
		generated.table, generated.err = gen.Build()
		if generated.err == nil {
			tracer().Infof("generated tables for grammar %s: %d states",
				generated.table.Grammar().Name, gen.CFSM().Size())
		}
	})
	return generated.table, generated.err
}

func mustTable(t *lr.Table, err error) *lr.Table {
	if err != nil {
		panic(fmt.Sprintf("lang: invalid built-in table: %v", err))
	}
	return t
}

// DemoTable returns a hand-written, partial table for DemoGrammar. It covers the
// start of statements only: the parser will recognize the first tokens of an
// assignment or a print statement and then stop with a missing ACTION entry.
// DemoTable is useful to watch error detection at work.
//
//     state 0:  ID s5 · print s6 · if s7 · while s8 · for s9
//               GOTO program 1 · stmt_list 2 · stmt 3 · assign/print_stmt/… 4
//     state 1:  $ acc
//     state 2:  $ r1
//     state 3:  ID s5 · print s6 · if s7 · while s8 · for s9 · $ r3 · DEDENT r3
//     state 5:  = s10
//     state 6:  ( s11
//     state 10: GOTO expr 15
//     state 11: GOTO expr 16
//
func DemoTable() *lr.Table {
	tb := lr.NewTableBuilder(DemoGrammar())
	for _, s := range []int{0, 3} {
		tb.SetAction(s, "ID", lr.ShiftTo(5))
		tb.SetAction(s, "print", lr.ShiftTo(6))
		tb.SetAction(s, "if", lr.ShiftTo(7))
		tb.SetAction(s, "while", lr.ShiftTo(8))
		tb.SetAction(s, "for", lr.ShiftTo(9))
	}
	tb.SetAction(1, lr.EOFName, lr.AcceptAction())
	tb.SetAction(2, lr.EOFName, lr.ReduceBy(1))
	tb.SetAction(3, lr.EOFName, lr.ReduceBy(3))
	tb.SetAction(3, "DEDENT", lr.ReduceBy(3))
	tb.SetAction(5, "=", lr.ShiftTo(10))
	tb.SetAction(6, "(", lr.ShiftTo(11))
	tb.SetGoto(0, "program", 1)
	tb.SetGoto(0, "stmt_list", 2)
	tb.SetGoto(0, "stmt", 3)
	for _, A := range []string{"assign", "print_stmt", "if_stmt", "while_stmt", "for_stmt"} {
		tb.SetGoto(0, A, 4)
	}
	tb.SetGoto(10, "expr", 15)
	tb.SetGoto(11, "expr", 16)
	return mustTable(tb.Table())
}

// AssignTable returns a complete table for AssignGrammar.
func AssignTable() *lr.Table {
	tb := lr.NewTableBuilder(AssignGrammar())
	tb.SetAction(0, "ID", lr.ShiftTo(2))
	tb.SetGoto(0, "program", 1)
	tb.SetGoto(0, "assign", 3)
	tb.SetAction(1, lr.EOFName, lr.AcceptAction())
	tb.SetAction(2, "=", lr.ShiftTo(4))
	tb.SetAction(3, lr.EOFName, lr.ReduceBy(1))
	tb.SetAction(4, "ID", lr.ShiftTo(6))
	tb.SetAction(4, "NUMBER", lr.ShiftTo(7))
	tb.SetGoto(4, "expr", 5)
	tb.SetAction(5, lr.EOFName, lr.ReduceBy(2))
	tb.SetAction(6, lr.EOFName, lr.ReduceBy(3))
	tb.SetAction(7, lr.EOFName, lr.ReduceBy(4))
	return mustTable(tb.Table())
}
