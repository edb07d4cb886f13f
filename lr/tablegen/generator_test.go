package tablegen

import (
	"strings"
	"testing"

	"github.com/npillmayer/lrpda/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

//     E  ->  E + T  |  T
//     T  ->  n
func makeExprGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("E")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("n").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	gen := NewGenerator(lr.NewAnalysis(makeExprGrammar(t)))
	cfsm := gen.CFSM()
	assert.Equal(t, 6, cfsm.Size())
	assert.Equal(t, 0, cfsm.S0.ID)
	assert.Equal(t, []string{"E' → · E", "E → · E + T", "E → · T", "T → · n"}, cfsm.Items(cfsm.S0))
	accepting := 0
	for _, s := range cfsm.States() {
		if s.Accept {
			accepting++
			assert.Equal(t, 2, s.ID)
		}
	}
	assert.Equal(t, 1, accepting)
	assert.Len(t, cfsm.Edges(cfsm.S0), 3) // n, E, T
	var dot strings.Builder
	assert.NoError(t, cfsm.ToGraphViz(&dot))
	assert.True(t, strings.HasPrefix(dot.String(), "digraph {"))
	assert.Contains(t, dot.String(), "s000 -> s001 [label=\"n\"]")
}

func TestBuildSLRTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	gen := NewGenerator(lr.NewAnalysis(makeExprGrammar(t)))
	table, err := gen.Build()
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", table)
	assert.Empty(t, gen.Conflicts())
	assert.NoError(t, table.ValidateComplete())
	expectActions := []struct {
		state    int
		terminal string
		action   lr.Action
	}{
		{0, "n", lr.ShiftTo(1)},
		{1, "+", lr.ReduceBy(3)},
		{1, "$", lr.ReduceBy(3)},
		{2, "+", lr.ShiftTo(4)},
		{2, "$", lr.AcceptAction()},
		{3, "$", lr.ReduceBy(2)},
		{4, "n", lr.ShiftTo(1)},
		{5, "+", lr.ReduceBy(1)},
	}
	for _, x := range expectActions {
		a, ok := table.Action(x.state, x.terminal)
		if assert.True(t, ok, "ACTION[%d, %s]", x.state, x.terminal) {
			assert.Equal(t, x.action, a, "ACTION[%d, %s]", x.state, x.terminal)
		}
	}
	_, ok := table.Action(0, "+")
	assert.False(t, ok)
	for _, x := range []struct {
		state  int
		nt     string
		target int
	}{{0, "E", 2}, {0, "T", 3}, {4, "T", 5}} {
		target, ok := table.Goto(x.state, x.nt)
		assert.True(t, ok)
		assert.Equal(t, x.target, target)
	}
}

func TestConflictingGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("ambiguous")
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("n").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	gen := NewGenerator(lr.NewAnalysis(g))
	table, err := gen.Build()
	assert.Nil(t, table)
	if assert.Error(t, err) {
		cerr, ok := err.(*ConflictError)
		if assert.True(t, ok) {
			assert.Len(t, cerr.Conflicts, 1)
			c := cerr.Conflicts[0]
			assert.Equal(t, "+", c.Terminal)
			assert.Len(t, c.Actions, 2)
		}
	}
	assert.Len(t, gen.Conflicts(), 1)
}

func TestEpsilonProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("signed")
	b.LHS("Var").N("Sign").T("a").End()
	b.LHS("Sign").T("+").End()
	b.LHS("Sign").T("-").End()
	b.LHS("Sign").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := NewGenerator(lr.NewAnalysis(g)).Build()
	if err != nil {
		t.Fatal(err)
	}
	a, ok := table.Action(0, "a")
	assert.True(t, ok)
	assert.Equal(t, lr.ReduceBy(4), a, "empty sign reduced on lookahead a")
}
