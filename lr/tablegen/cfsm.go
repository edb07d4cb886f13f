package tablegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lrpda/lr"
)

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// === Items =================================================================

// item is an LR(0) item: a production with a dot position.
type item struct {
	prod int
	dot  int
}

func itemComparator(i1, i2 interface{}) int {
	a, b := i1.(item), i2.(item)
	if c := utils.IntComparator(a.prod, b.prod); c != 0 {
		return c
	}
	return utils.IntComparator(a.dot, b.dot)
}

func newItemSet() *treeset.Set {
	return treeset.NewWith(itemComparator)
}

func sameItems(s1, s2 *treeset.Set) bool {
	if s1.Size() != s2.Size() {
		return false
	}
	v1, v2 := s1.Values(), s2.Values()
	for i := range v1 {
		if v1[i].(item) != v2[i].(item) {
			return false
		}
	}
	return true
}

// === Closure and Goto-Set Operations =======================================

type itemOps struct {
	g *lr.Grammar
}

// peek returns the symbol after the dot, if any.
func (ops itemOps) peek(i item) (lr.Symbol, bool) {
	p, _ := ops.g.Production(i.prod)
	if i.dot >= p.Len() {
		return lr.Symbol{}, false
	}
	return p.RHS[i.dot], true
}

func (ops itemOps) itemString(i item) string {
	p, _ := ops.g.Production(i.prod)
	var b strings.Builder
	b.WriteString(p.LHS.Name)
	b.WriteString(" →")
	for k, sym := range p.RHS {
		if k == i.dot {
			b.WriteString(" ·")
		}
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	if i.dot == p.Len() {
		b.WriteString(" ·")
	}
	return b.String()
}

func (ops itemOps) setString(S *treeset.Set, sep string) string {
	vals := S.Values()
	items := make([]string, len(vals))
	for k, x := range vals {
		items[k] = ops.itemString(x.(item))
	}
	return strings.Join(items, sep)
}

// closure computes the closure of an item set. S is not modified.
func (ops itemOps) closure(S *treeset.Set) *treeset.Set {
	C := newItemSet()
	C.Add(S.Values()...)
	work := S.Values()
	for len(work) > 0 {
		i := work[len(work)-1].(item)
		work = work[:len(work)-1]
		A, ok := ops.peek(i)
		if !ok || A.Terminal {
			continue
		}
		for _, p := range ops.g.ProductionsFor(A.Name) {
			start := item{prod: p.ID}
			if !C.Contains(start) {
				C.Add(start)
				work = append(work, start)
			}
		}
	}
	return C
}

// gotoSetClosure computes goto(S, A): advance every item with A after the dot,
// then close the resulting set.
func (ops itemOps) gotoSetClosure(S *treeset.Set, A lr.Symbol) *treeset.Set {
	gotoset := newItemSet()
	for _, x := range S.Values() {
		i := x.(item)
		if sym, ok := ops.peek(i); ok && sym == A {
			gotoset.Add(item{prod: i.prod, dot: i.dot + 1})
		}
	}
	if gotoset.Empty() {
		return gotoset
	}
	C := ops.closure(gotoset)
	tracer().Debugf("goto(%s) --%s--> {%s}", ops.setString(S, ", "), A, ops.setString(C, ", "))
	return C
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int          // serial ID of this state
	items  *treeset.Set // configuration items within this state
	Accept bool         // does this state contain the completed start production?
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// Edge is a transition of the CFSM, labeled with a grammar symbol.
type Edge struct {
	From, To *CFSMState
	Label    lr.Symbol
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. It is constructed by a Generator. Clients normally do not
// use it directly, except for debugging purposes.
type CFSM struct {
	ops    itemOps
	states *treeset.Set    // all the states, ordered by ID
	edges  *arraylist.List // all the edges between states
	S0     *CFSMState      // start state
}

func emptyCFSM(g *lr.Grammar) *CFSM {
	return &CFSM{
		ops:    itemOps{g: g},
		states: treeset.NewWith(stateComparator),
		edges:  arraylist.New(),
	}
}

// addState adds a state for an item set, if not already present. It returns the
// state and true if the state is new.
func (c *CFSM) addState(iset *treeset.Set) (*CFSMState, bool) {
	if s := c.findStateByItems(iset); s != nil {
		return s, false
	}
	s := &CFSMState{ID: c.states.Size(), items: iset}
	for _, x := range iset.Values() {
		if i := x.(item); i.prod == 0 && i.dot == 1 {
			s.Accept = true
		}
	}
	c.states.Add(s)
	return s, true
}

func (c *CFSM) findStateByItems(iset *treeset.Set) *CFSMState {
	it := c.states.Iterator()
	for it.Next() {
		s := it.Value().(*CFSMState)
		if sameItems(s.items, iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(from, to *CFSMState, label lr.Symbol) {
	c.edges.Add(&Edge{From: from, To: to, Label: label})
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	vals := c.states.Values()
	states := make([]*CFSMState, len(vals))
	for i, x := range vals {
		states[i] = x.(*CFSMState)
	}
	return states
}

// Edges returns all outgoing edges of a state, in order of creation.
func (c *CFSM) Edges(s *CFSMState) []*Edge {
	r := make([]*Edge, 0, 2)
	it := c.edges.Iterator()
	for it.Next() {
		if e := it.Value().(*Edge); e.From == s {
			r = append(r, e)
		}
	}
	return r
}

// Items returns the LR(0) items of a state in textual form, e.g. "A → a · B".
func (c *CFSM) Items(s *CFSMState) []string {
	vals := s.items.Values()
	r := make([]string, len(vals))
	for i, x := range vals {
		r[i] = c.ops.itemString(x.(item))
	}
	return r
}

// buildCFSM constructs the characteristic finite state machine for a grammar.
func buildCFSM(g *lr.Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(g)
	start := newItemSet()
	start.Add(item{prod: 0})
	cfsm.S0, _ = cfsm.addState(cfsm.ops.closure(start))
	var symbols []lr.Symbol
	for _, a := range g.Terminals() {
		symbols = append(symbols, lr.T(a))
	}
	for _, A := range g.Nonterminals() {
		symbols = append(symbols, lr.N(A))
	}
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range symbols {
			gotoset := cfsm.ops.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				S.Add(snew)
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for grammar %s has %d states", g.Name, cfsm.Size())
	return cfsm
}

// ToGraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) ToGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(c.ops.setString(s.items, "\\n"))))
	}
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*Edge)
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.From.ID, e.To.ID, forGraphviz(e.Label.Name)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

var graphvizEscapes = strings.NewReplacer(`"`, `\"`, "<", `\<`, ">", `\>`, "{", `\{`, "}", `\}`, "|", `\|`)

func forGraphviz(s string) string {
	return graphvizEscapes.Replace(s)
}
