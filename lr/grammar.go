package lr

import (
	"errors"
	"fmt"
	"strings"
)

// Reserved symbol names.
const (
	EOFName     = "$" // end-of-input terminal
	EpsilonName = "ε" // the empty right-hand side in textual dumps
)

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal or a non-terminal.
type Symbol struct {
	Name     string
	Terminal bool
}

// T creates a terminal symbol.
func T(name string) Symbol {
	return Symbol{Name: name, Terminal: true}
}

// N creates a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{Name: name}
}

// IsTerminal returns true if this symbol is a terminal.
func (s Symbol) IsTerminal() bool {
	return s.Terminal
}

func (s Symbol) String() string {
	return s.Name
}

// --- Productions -----------------------------------------------------------

// Production is a grammar rule LHS → RHS. Productions are identified by their ID,
// which is their index within the production set and is used as the operand of
// reduce actions.
type Production struct {
	ID  int
	LHS Symbol
	RHS []Symbol
}

// Len returns the number of symbols of the right hand side.
func (p *Production) Len() int {
	return len(p.RHS)
}

// IsEpsilon is true for productions with an empty right hand side.
func (p *Production) IsEpsilon() bool {
	return len(p.RHS) == 0
}

func (p *Production) String() string {
	return fmt.Sprintf("%s → %s", p.LHS.Name, rhsString(p.RHS, " "))
}

func rhsString(rhs []Symbol, sep string) string {
	if len(rhs) == 0 {
		return EpsilonName
	}
	names := make([]string, len(rhs))
	for i, sym := range rhs {
		names[i] = sym.Name
	}
	return strings.Join(names, sep)
}

func copyProduction(p *Production) Production {
	rhs := make([]Symbol, len(p.RHS))
	copy(rhs, p.RHS)
	return Production{ID: p.ID, LHS: p.LHS, RHS: rhs}
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an ordered set of productions. Production 0 is the augmented start
// production S' → S. A grammar is immutable once built and may be shared between
// goroutines.
type Grammar struct {
	Name         string
	productions  []*Production
	terminals    []string // in order of first appearance, EOFName last
	nonterminals []string // in order of first appearance as LHS
	isNonterm    map[string]bool
	isTerm       map[string]bool
	byLHS        map[string][]*Production
}

// NewGrammar creates a grammar from an explicit list of productions. The list has
// to be ordered by ID, starting at 0, and production 0 has to be the augmented
// start production with exactly one non-terminal on its right hand side.
func NewGrammar(name string, productions []Production) (*Grammar, error) {
	if len(productions) == 0 {
		return nil, errors.New("grammar has no productions")
	}
	g := &Grammar{
		Name:      name,
		isNonterm: make(map[string]bool),
		isTerm:    make(map[string]bool),
		byLHS:     make(map[string][]*Production),
	}
	for i := range productions {
		p := copyProduction(&productions[i])
		if p.ID != i {
			return nil, fmt.Errorf("production #%d has ID %d; IDs must be consecutive from 0", i, p.ID)
		}
		if p.LHS.Terminal || p.LHS.Name == "" {
			return nil, fmt.Errorf("production %d: left hand side must be a named non-terminal", i)
		}
		if !g.isNonterm[p.LHS.Name] {
			g.isNonterm[p.LHS.Name] = true
			g.nonterminals = append(g.nonterminals, p.LHS.Name)
		}
		g.productions = append(g.productions, &p)
		g.byLHS[p.LHS.Name] = append(g.byLHS[p.LHS.Name], &p)
	}
	start := g.productions[0]
	if len(start.RHS) != 1 || start.RHS[0].Terminal {
		return nil, fmt.Errorf("production 0 must be an augmented start production S' → S, is %v", start)
	}
	if len(g.byLHS[start.LHS.Name]) != 1 {
		return nil, fmt.Errorf("augmented start symbol %s must have exactly one production", start.LHS.Name)
	}
	for _, p := range g.productions {
		for _, sym := range p.RHS {
			if err := g.checkRHSSymbol(p, sym); err != nil {
				return nil, err
			}
			if sym.Terminal && !g.isTerm[sym.Name] {
				g.isTerm[sym.Name] = true
				g.terminals = append(g.terminals, sym.Name)
			}
		}
	}
	g.isTerm[EOFName] = true
	g.terminals = append(g.terminals, EOFName)
	return g, nil
}

func (g *Grammar) checkRHSSymbol(p *Production, sym Symbol) error {
	switch {
	case sym.Name == "":
		return fmt.Errorf("production %d: empty symbol name", p.ID)
	case sym.Name == EOFName || sym.Name == EpsilonName:
		return fmt.Errorf("production %d: symbol name %q is reserved", p.ID, sym.Name)
	case sym.Terminal && g.isNonterm[sym.Name]:
		return fmt.Errorf("production %d: %q is used as terminal and as non-terminal", p.ID, sym.Name)
	case !sym.Terminal && !g.isNonterm[sym.Name]:
		return fmt.Errorf("production %d: non-terminal %q has no productions", p.ID, sym.Name)
	case !sym.Terminal && sym.Name == g.productions[0].LHS.Name:
		return fmt.Errorf("production %d: augmented start symbol %q used on right hand side", p.ID, sym.Name)
	}
	return nil
}

// Len returns the number of productions, including the augmented start production.
func (g *Grammar) Len() int {
	return len(g.productions)
}

// Production returns the production with the given ID.
func (g *Grammar) Production(id int) (*Production, bool) {
	if id < 0 || id >= len(g.productions) {
		return nil, false
	}
	return g.productions[id], true
}

// Productions returns a copy of the ordered production list.
func (g *Grammar) Productions() []Production {
	prods := make([]Production, len(g.productions))
	for i, p := range g.productions {
		prods[i] = copyProduction(p)
	}
	return prods
}

// ProductionsFor returns all productions for a non-terminal, in ID order.
// Clients must not modify the productions returned.
func (g *Grammar) ProductionsFor(lhs string) []*Production {
	return g.byLHS[lhs]
}

// Start returns the augmented start symbol S'.
func (g *Grammar) Start() Symbol {
	return g.productions[0].LHS
}

// StartSymbol returns the start symbol S wrapped by the augmented start symbol.
func (g *Grammar) StartSymbol() Symbol {
	return g.productions[0].RHS[0]
}

// Terminals returns the terminal vocabulary in order of first appearance.
// The end-of-input terminal is always the last one.
func (g *Grammar) Terminals() []string {
	return append([]string(nil), g.terminals...)
}

// Nonterminals returns all non-terminals in order of their first appearance as
// a left hand side, starting with the augmented start symbol.
func (g *Grammar) Nonterminals() []string {
	return append([]string(nil), g.nonterminals...)
}

// IsTerminal is true if name is part of the terminal vocabulary (including "$").
func (g *Grammar) IsTerminal(name string) bool {
	return g.isTerm[name]
}

// IsNonterminal is true if name is a non-terminal of the grammar.
func (g *Grammar) IsNonterminal(name string) bool {
	return g.isNonterm[name]
}

// Dump is a debugging helper, listing all productions to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s -------------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.ID, p)
	}
	tracer().Debugf("-------------------------------------------------")
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a helper for constructing grammars. Create one with
// NewGrammarBuilder. The first rule's left hand side will be the start symbol.
type GrammarBuilder struct {
	name  string
	rules []Production
	err   error
}

// RuleBuilder collects the right hand side of a single rule. It is created by
// GrammarBuilder.LHS.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []Symbol
}

// NewGrammarBuilder creates a builder for a grammar with a name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// LHS starts a new rule for non-terminal name.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	if name == "" && gb.err == nil {
		gb.err = errors.New("rule with empty left hand side")
	}
	return &RuleBuilder{gb: gb, lhs: name}
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, N(name))
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, T(name))
	return rb
}

// End finishes the rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.gb.rules = append(rb.gb.rules, Production{LHS: N(rb.lhs), RHS: rb.rhs})
	return rb.gb
}

// Epsilon finishes the rule as an epsilon-production. Symbols added before are
// discarded.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.rhs = nil
	return rb.End()
}

// Grammar creates the grammar, adding an augmented start production as
// production 0. It returns the first error encountered while building.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %s has no rules", gb.name)
	}
	names := make(map[string]bool)
	for _, r := range gb.rules {
		names[r.LHS.Name] = true
		for _, sym := range r.RHS {
			names[sym.Name] = true
		}
	}
	start := gb.rules[0].LHS.Name
	augmented := start + "'"
	for names[augmented] {
		augmented += "'"
	}
	prods := make([]Production, 0, len(gb.rules)+1)
	prods = append(prods, Production{ID: 0, LHS: N(augmented), RHS: []Symbol{N(start)}})
	for i, r := range gb.rules {
		r.ID = i + 1
		prods = append(prods, r)
	}
	g, err := NewGrammar(gb.name, prods)
	if err != nil {
		return nil, err
	}
	g.Dump()
	return g, nil
}
