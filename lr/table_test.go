package lr

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// E' -> E ;  E -> n
func makeTinyTable(t *testing.T) *Table {
	b := NewGrammarBuilder("tiny")
	b.LHS("E").T("n").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	tb := NewTableBuilder(g)
	tb.SetAction(0, "n", ShiftTo(2)).SetGoto(0, "E", 1)
	tb.SetAction(1, "$", AcceptAction())
	tb.SetAction(2, "$", ReduceBy(1))
	table, err := tb.Table()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestActionEncoding(t *testing.T) {
	for _, a := range []Action{ShiftTo(0), ShiftTo(4711), ReduceBy(3), AcceptAction(), {}} {
		assert.Equal(t, a, decodeAction(a.encode()))
	}
	assert.Equal(t, "s4", ShiftTo(4).String())
	assert.Equal(t, "r2", ReduceBy(2).String())
	assert.Equal(t, "acc", AcceptAction().String())
	assert.Equal(t, "err", Action{}.String())
}

func TestTableLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	table := makeTinyTable(t)
	a, ok := table.Action(0, "n")
	assert.True(t, ok)
	assert.Equal(t, ShiftTo(2), a)
	_, ok = table.Action(0, "$")
	assert.False(t, ok, "ACTION[0, $] is empty")
	_, ok = table.Action(17, "n")
	assert.False(t, ok, "state out of range")
	_, ok = table.Action(0, "unknown")
	assert.False(t, ok, "unknown terminal")
	s, ok := table.Goto(0, "E")
	assert.True(t, ok)
	assert.Equal(t, 1, s)
	_, ok = table.Goto(2, "E")
	assert.False(t, ok)
	assert.Equal(t, []int{0, 1, 2}, table.States())
	assert.Equal(t, []ActionEntry{{"n", ShiftTo(2)}}, table.ActionEntries(0))
	assert.Equal(t, []GotoEntry{{"E", 1}}, table.GotoEntries(0))
	assert.NoError(t, table.Validate())
	assert.NoError(t, table.ValidateComplete())
}

func TestTableBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	g := makeTinyTable(t).Grammar()
	_, err := NewTableBuilder(g).SetAction(0, "n", ShiftTo(2)).SetAction(0, "n", ReduceBy(1)).Table()
	assert.Error(t, err, "shift/reduce conflict")
	_, err = NewTableBuilder(g).SetAction(0, "n", ShiftTo(2)).SetAction(0, "n", ShiftTo(2)).Table()
	assert.NoError(t, err, "identical entries do not conflict")
	_, err = NewTableBuilder(g).SetAction(0, "E", ShiftTo(2)).Table()
	assert.Error(t, err, "non-terminal in ACTION table")
	_, err = NewTableBuilder(g).SetGoto(0, "n", 1).Table()
	assert.Error(t, err, "terminal in GOTO table")
	_, err = NewTableBuilder(g).SetGoto(-1, "E", 1).Table()
	assert.Error(t, err, "negative state")
}

func TestTableDefects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	table := makeTinyTable(t)
	broken, err := table.Builder().
		RemoveAction(2, "$").SetAction(2, "$", ReduceBy(9)).
		SetAction(0, "n", ShiftTo(2)).
		SetGoto(2, "E", 5).
		Table()
	if err != nil {
		t.Fatal(err)
	}
	err = broken.Validate()
	if assert.Error(t, err) {
		defects := err.(TableDefects)
		assert.Len(t, defects, 1)
		assert.Equal(t, 2, defects[0].State)
		assert.Equal(t, "r9", defects[0].Entry)
	}
	err = broken.ValidateComplete()
	if assert.Error(t, err) {
		assert.Len(t, err.(TableDefects), 2, "bad reduce and goto to empty state 5")
	}
	partial, _ := table.Builder().RemoveAction(2, "$").Table()
	assert.NoError(t, partial.Validate(), "partial tables are valid")
	assert.Error(t, partial.ValidateComplete())
}

func TestTableFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	table := makeTinyTable(t)
	copied, err := table.Builder().Table()
	if err != nil {
		t.Fatal(err)
	}
	fp1, err := table.Fingerprint()
	assert.NoError(t, err)
	fp2, _ := copied.Fingerprint()
	assert.Equal(t, fp1, fp2)
	variant, _ := table.Builder().RemoveGoto(0, "E").Table()
	fp3, _ := variant.Fingerprint()
	assert.NotEqual(t, fp1, fp3)
}

func TestTableRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.lr")
	defer teardown()
	//
	out := makeTinyTable(t).String()
	t.Logf("\n%s", out)
	assert.True(t, strings.HasPrefix(out, "0: E' -> E\n1: E -> n\n"))
	for _, cell := range []string{"state", "s2", "acc", "r1"} {
		assert.Contains(t, out, cell)
	}
}
