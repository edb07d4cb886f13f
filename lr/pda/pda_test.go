package pda

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr"
	"github.com/npillmayer/lrpda/lr/tablegen"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// --- Test fixtures ---------------------------------------------------------

const (
	tokID lrpda.TokType = iota + 1
	tokNumber
	tokAssign
	tokNewline
	tokUnknown lrpda.TokType = 42
)

var testClassifier = NewTypeClassifier(map[lrpda.TokType]string{
	tokID:     "ID",
	tokNumber: "NUMBER",
	tokAssign: "=",
}, tokNewline)

type testToken struct {
	typ    lrpda.TokType
	lexeme string
	at     uint64
}

func (t testToken) TokType() lrpda.TokType { return t.typ }
func (t testToken) Lexeme() string         { return t.lexeme }
func (t testToken) Value() interface{}     { return nil }
func (t testToken) Span() lrpda.Span       { return lrpda.Span{t.at, t.at + uint64(len(t.lexeme))} }
func (t testToken) Pos() lrpda.Position    { return lrpda.Position{Line: 1, Column: int(t.at) + 1} }

// tokenize splits input at spaces. "NL" is a newline, "EOF" an end-of-input token.
func tokenize(input string) []lrpda.Token {
	var tokens []lrpda.Token
	var at uint64
	for _, field := range strings.Fields(input) {
		t := testToken{typ: tokID, lexeme: field, at: at}
		switch {
		case field == "=":
			t.typ = tokAssign
		case field == "NL":
			t.typ, t.lexeme = tokNewline, "\n"
		case field == "EOF":
			t.typ, t.lexeme = lrpda.EOF, ""
		case field == "?" || field == "$":
			t.typ = tokUnknown
		case unicode.IsDigit(rune(field[0])):
			t.typ = tokNumber
		}
		tokens = append(tokens, t)
		at += uint64(len(field)) + 1
	}
	return tokens
}

// assignment statements:
//
//     0: S' -> program
//     1: program -> assign
//     2: assign -> ID = expr
//     3: expr -> ID
//     4: expr -> NUMBER
//
func assignTable(t *testing.T) *lr.Table {
	b := lr.NewGrammarBuilder("assign")
	b.LHS("program").N("assign").End()
	b.LHS("assign").T("ID").T("=").N("expr").End()
	b.LHS("expr").T("ID").End()
	b.LHS("expr").T("NUMBER").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	tb := lr.NewTableBuilder(g)
	tb.SetAction(0, "ID", lr.ShiftTo(2)).SetGoto(0, "program", 1).SetGoto(0, "assign", 3)
	tb.SetAction(1, "$", lr.AcceptAction())
	tb.SetAction(2, "=", lr.ShiftTo(4))
	tb.SetAction(3, "$", lr.ReduceBy(1))
	tb.SetAction(4, "ID", lr.ShiftTo(6)).SetAction(4, "NUMBER", lr.ShiftTo(7)).SetGoto(4, "expr", 5)
	tb.SetAction(5, "$", lr.ReduceBy(2))
	tb.SetAction(6, "$", lr.ReduceBy(3))
	tb.SetAction(7, "$", lr.ReduceBy(4))
	table, err := tb.Table()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func variant(t *testing.T, table *lr.Table, modify func(tb *lr.TableBuilder)) *lr.Table {
	tb := table.Builder()
	modify(tb)
	v, err := tb.Table()
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func parse(table *lr.Table, input string, opts ...Option) (*Parser, bool, error) {
	opts = append([]Option{WithClassifier(testClassifier)}, opts...)
	p := NewParser(table.Grammar(), table, opts...)
	accept, err := p.Parse(tokenize(input))
	return p, accept, err
}

func kindOf(err error) ErrorKind {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return 0
}

// --- the Tests -------------------------------------------------------------

func TestAcceptAssignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	p, accept, err := parse(assignTable(t), "x = 5")
	assert.NoError(t, err)
	assert.True(t, accept)
	t.Logf("\n%s", p.Trace())
	expected := []string{"s2", "s4", "s7", "r4", "r2", "r1", "acc"}
	entries := p.Trace().Entries()
	if assert.Len(t, entries, len(expected)) {
		for i, e := range entries {
			assert.Equal(t, i, e.Step)
			assert.Equal(t, expected[i], e.Action.String(), "step %d", i)
		}
	}
	assert.Equal(t, "state 4, lookahead 'NUMBER', action s7, stack [0 ID 2 = 4]", entries[2].String())
	assert.Equal(t, "state 7, lookahead '$', action r4, stack [0 ID 2 = 4 NUMBER 7] (expr → NUMBER)",
		entries[3].String())
	last, ok := p.Trace().Last()
	assert.True(t, ok)
	assert.Equal(t, lr.Accept, last.Action.Kind)
	assert.Nil(t, p.Err())
	assert.Equal(t, 3, p.StackHeight(), "program on top of sentinel")
	stack := p.Stack()
	assert.Equal(t, "program", stack[1].Symbol)
	assert.Equal(t, lrpda.Span{0, 5}, stack[1].Span)
}

func TestStackDiscipline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := assignTable(t)
	p, accept, _ := parse(table, "x = y")
	assert.True(t, accept)
	entries := p.Trace().Entries()
	for i := 0; i < len(entries)-1; i++ {
		e, next := entries[i], entries[i+1]
		switch e.Action.Kind {
		case lr.Shift:
			assert.Equal(t, len(e.Stack)+2, len(next.Stack), "shift at step %d", i)
		case lr.Reduce:
			prod, _ := table.Grammar().Production(e.Action.Target)
			assert.Equal(t, len(e.Stack)-2*prod.Len()+2, len(next.Stack), "reduce at step %d", i)
		}
	}
}

func TestActionMiss(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	p, accept, err := parse(assignTable(t), "x =")
	assert.False(t, accept)
	if assert.Error(t, err) {
		perr := err.(*ParseError)
		assert.Equal(t, ActionMiss, perr.Kind)
		assert.Equal(t, 4, perr.State)
		assert.Equal(t, "$", perr.Symbol)
		assert.Equal(t, 2, perr.Depth)
		assert.False(t, perr.Fatal())
		assert.True(t, errors.Is(err, ErrActionMiss))
		assert.False(t, errors.Is(err, ErrGotoMiss))
	}
	assert.Equal(t, err, p.Err())
	last, _ := p.Trace().Last()
	assert.Equal(t, lr.ErrorAction, last.Action.Kind)
	var out strings.Builder
	assert.NoError(t, p.RenderStack(&out))
	assert.Contains(t, out.String(), "ID")
}

func TestGotoMiss(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := variant(t, assignTable(t), func(tb *lr.TableBuilder) {
		tb.RemoveGoto(4, "expr")
	})
	_, accept, err := parse(table, "x = 5")
	assert.False(t, accept)
	if assert.Error(t, err) {
		perr := err.(*ParseError)
		assert.Equal(t, GotoMiss, perr.Kind)
		assert.Equal(t, 4, perr.State)
		assert.Equal(t, "expr", perr.Symbol)
		assert.True(t, perr.Fatal())
		assert.True(t, errors.Is(err, ErrGotoMiss))
	}
}

func TestStackUnderflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := variant(t, assignTable(t), func(tb *lr.TableBuilder) {
		tb.RemoveAction(0, "ID").SetAction(0, "ID", lr.ReduceBy(2))
	})
	p, _, err := parse(table, "x = 5")
	assert.Equal(t, StackUnderflow, kindOf(err))
	assert.Equal(t, 1, p.StackHeight(), "nothing popped")
}

func TestBadProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := variant(t, assignTable(t), func(tb *lr.TableBuilder) {
		tb.RemoveAction(7, "$").SetAction(7, "$", lr.ReduceBy(9))
	})
	assert.Error(t, table.Validate())
	_, _, err := parse(table, "x = 5")
	assert.Equal(t, BadProduction, kindOf(err))
	assert.True(t, errors.Is(err, ErrBadProduction))
}

func TestNoProgress(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("loop")
	b.LHS("S").N("A").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	// reducing A -> ε in state 0 returns to state 0
	table, err := lr.NewTableBuilder(g).SetAction(0, "$", lr.ReduceBy(2)).SetGoto(0, "A", 0).Table()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(g, table)
	_, err = p.Parse(nil)
	assert.Equal(t, NoProgress, kindOf(err))
	// S' -> S, S -> A, A -> ε: limit is (1+1)+(1+1)+(0+1)
	assert.Equal(t, 5+1, p.Trace().Len())
	//
	p = NewParser(g, table, WithReductionLimit(2))
	_, err = p.Parse(nil)
	assert.Equal(t, NoProgress, kindOf(err))
	assert.Equal(t, 3, p.Trace().Len())
}

func TestReduceCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("cycle")
	b.LHS("S").N("A").End()
	b.LHS("A").N("B").End()
	b.LHS("B").N("A").End()
	b.LHS("A").T("ID").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	// A -> B and B -> A reduce back and forth above state 0
	tb := lr.NewTableBuilder(g)
	tb.SetAction(0, "ID", lr.ShiftTo(2)).SetGoto(0, "A", 1).SetGoto(0, "B", 3)
	tb.SetAction(2, "$", lr.ReduceBy(4))
	tb.SetAction(1, "$", lr.ReduceBy(3))
	tb.SetAction(3, "$", lr.ReduceBy(2))
	table, err := tb.Table()
	if err != nil {
		t.Fatal(err)
	}
	p, accept, err := parse(table, "x")
	assert.False(t, accept)
	if assert.Error(t, err) {
		perr := err.(*ParseError)
		assert.Equal(t, NoProgress, perr.Kind)
		assert.Contains(t, perr.Detail, "reduce cycle")
		assert.Equal(t, 4, perr.Step)
	}
	assert.Equal(t, 5, p.Trace().Len())
}

func TestEpsilonReductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("nullable")
	b.LHS("S").N("A").N("A").N("A").N("A").N("A").N("A").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := tablegen.NewGenerator(lr.NewAnalysis(g)).Build()
	if err != nil {
		t.Fatal(err)
	}
	assert.NoError(t, table.ValidateComplete())
	p := NewParser(g, table)
	accept, err := p.Parse(nil)
	assert.NoError(t, err)
	assert.True(t, accept, "six epsilon-reductions and S -> A A A A A A need no input")
	assert.Equal(t, 8, p.Trace().Len())
	//
	p = NewParser(g, table, WithReductionLimit(3))
	_, err = p.Parse(nil)
	assert.Equal(t, NoProgress, kindOf(err))
}

func TestShiftPastEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := variant(t, assignTable(t), func(tb *lr.TableBuilder) {
		tb.RemoveAction(7, "$").SetAction(7, "$", lr.ShiftTo(7))
	})
	_, accept, err := parse(table, "x = 5")
	assert.False(t, accept)
	assert.Equal(t, NoProgress, kindOf(err))
}

func TestLayoutAndEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := assignTable(t)
	_, accept, err := parse(table, "NL x NL = 5 NL")
	assert.NoError(t, err)
	assert.True(t, accept, "newlines are layout")
	_, accept, err = parse(table, "x = 5 EOF = =")
	assert.NoError(t, err)
	assert.True(t, accept, "input is cut at end-of-input token")
}

func TestClassifierFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	p, accept, err := parse(assignTable(t), "x = ?")
	assert.False(t, accept)
	if assert.Error(t, err) {
		perr := err.(*ParseError)
		assert.Equal(t, ActionMiss, perr.Kind)
		assert.Equal(t, "?", perr.Symbol)
	}
	last, _ := p.Trace().Last()
	assert.True(t, last.Fallback)
	assert.Contains(t, last.String(), "[unclassified]")
}

func TestFallbackNeverEndsInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	term, known := testClassifier.Classify(testToken{typ: tokUnknown, lexeme: "$"})
	assert.False(t, known)
	assert.Equal(t, "#42", term)
	//
	p, accept, err := parse(assignTable(t), "x = 5 $ =")
	assert.False(t, accept, "trailing input must not be dropped")
	if assert.Error(t, err) {
		perr := err.(*ParseError)
		assert.Equal(t, ActionMiss, perr.Kind)
		assert.Equal(t, "#42", perr.Symbol)
		assert.Equal(t, "$", perr.Lexeme)
	}
	last, _ := p.Trace().Last()
	assert.True(t, last.Fallback)
}

func TestPanicOnTableDefect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	gconf.Initialize(testconfig.Conf{"panic-on-table-defect": true})
	defer gconf.Initialize(testconfig.Conf{})
	//
	broken := variant(t, assignTable(t), func(tb *lr.TableBuilder) {
		tb.RemoveGoto(4, "expr")
	})
	assert.Panics(t, func() {
		parse(broken, "x = 5")
	}, "GotoMiss is a table defect")
	assert.NotPanics(t, func() {
		_, accept, err := parse(assignTable(t), "x = =")
		assert.False(t, accept)
		assert.Equal(t, ActionMiss, kindOf(err))
	}, "ActionMiss is a syntax error")
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := assignTable(t)
	inputs := []string{"x = 5", "x = y", "x =", "= x", "x 5"}
	for _, input := range inputs {
		p1, acc1, err1 := parse(table, input)
		p2, acc2, err2 := parse(table, input)
		assert.Equal(t, acc1, acc2)
		assert.Equal(t, err1, err2)
		fp1, err := p1.Trace().Fingerprint()
		assert.NoError(t, err)
		fp2, _ := p2.Trace().Fingerprint()
		assert.Equal(t, fp1, fp2, "input %q", input)
	}
	// a parser may be re-used; every parse starts with a fresh trace
	p := NewParser(table.Grammar(), table, WithClassifier(testClassifier))
	p.Parse(tokenize("x ="))
	p.Parse(tokenize("x = 5"))
	assert.Nil(t, p.Err())
	assert.Equal(t, 7, p.Trace().Len())
}

func TestConcurrentParsers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.pda")
	defer teardown()
	//
	table := assignTable(t)
	p0, _, _ := parse(table, "x = 5")
	expected, _ := p0.Trace().Fingerprint()
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := NewParser(table.Grammar(), table, WithClassifier(testClassifier))
			if accept, _ := p.Parse(tokenize("x = 5")); accept {
				results[i], _ = p.Trace().Fingerprint()
			}
		}(i)
	}
	wg.Wait()
	for _, fp := range results {
		assert.Equal(t, expected, fp)
	}
}
