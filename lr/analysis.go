package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// Analysis holds the results of static grammar analysis: nullable non-terminals,
// FIRST and FOLLOW sets, and the sets of generating and reachable non-terminals.
// It is computed once by NewAnalysis and read-only afterwards.
type Analysis struct {
	g          *Grammar
	nullable   map[string]bool
	first      map[string]*treeset.Set
	follow     map[string]*treeset.Set
	generating map[string]bool
	reachable  map[string]bool
	nonempty   map[string]bool // derives at least one non-empty terminal string
}

// NewAnalysis analyses grammar g.
func NewAnalysis(g *Grammar) *Analysis {
	ga := &Analysis{
		g:          g,
		nullable:   make(map[string]bool),
		first:      make(map[string]*treeset.Set),
		follow:     make(map[string]*treeset.Set),
		generating: make(map[string]bool),
		reachable:  make(map[string]bool),
		nonempty:   make(map[string]bool),
	}
	for _, A := range g.nonterminals {
		ga.first[A] = treeset.NewWithStringComparator()
		ga.follow[A] = treeset.NewWithStringComparator()
	}
	ga.computeNullable()
	ga.computeFirst()
	ga.computeFollow()
	ga.computeGenerating()
	ga.computeReachable()
	tracer().Debugf("analysis of grammar %s done", g.Name)
	return ga
}

// Grammar returns the analysed grammar.
func (ga *Analysis) Grammar() *Grammar {
	return ga.g
}

func (ga *Analysis) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.productions {
			if ga.nullable[p.LHS.Name] {
				continue
			}
			if ga.allNullable(p.RHS) {
				ga.nullable[p.LHS.Name] = true
				changed = true
			}
		}
	}
}

func (ga *Analysis) allNullable(syms []Symbol) bool {
	for _, sym := range syms {
		if sym.Terminal || !ga.nullable[sym.Name] {
			return false
		}
	}
	return true
}

func (ga *Analysis) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.productions {
			F := ga.first[p.LHS.Name]
			n := F.Size()
			ga.addFirstOf(F, p.RHS)
			if F.Size() > n {
				changed = true
			}
		}
	}
}

// addFirstOf adds FIRST(syms) to set F and returns true if syms is nullable.
func (ga *Analysis) addFirstOf(F *treeset.Set, syms []Symbol) bool {
	for _, sym := range syms {
		if sym.Terminal {
			F.Add(sym.Name)
			return false
		}
		F.Add(ga.first[sym.Name].Values()...)
		if !ga.nullable[sym.Name] {
			return false
		}
	}
	return true
}

func (ga *Analysis) computeFollow() {
	ga.follow[ga.g.Start().Name].Add(EOFName)
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.productions {
			for i, sym := range p.RHS {
				if sym.Terminal {
					continue
				}
				F := ga.follow[sym.Name]
				n := F.Size()
				if ga.addFirstOf(F, p.RHS[i+1:]) {
					F.Add(ga.follow[p.LHS.Name].Values()...)
				}
				if F.Size() > n {
					changed = true
				}
			}
		}
	}
}

func (ga *Analysis) computeGenerating() {
	derives := func(syms []Symbol) bool {
		for _, sym := range syms {
			if !sym.Terminal && !ga.generating[sym.Name] {
				return false
			}
		}
		return true
	}
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.productions {
			if !ga.generating[p.LHS.Name] && derives(p.RHS) {
				ga.generating[p.LHS.Name] = true
				changed = true
			}
		}
	}
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.productions {
			if ga.nonempty[p.LHS.Name] || !derives(p.RHS) {
				continue
			}
			for _, sym := range p.RHS {
				if sym.Terminal || ga.nonempty[sym.Name] {
					ga.nonempty[p.LHS.Name] = true
					changed = true
					break
				}
			}
		}
	}
}

func (ga *Analysis) computeReachable() {
	start := ga.g.Start().Name
	ga.reachable[start] = true
	queue := []string{start}
	for len(queue) > 0 {
		A := queue[0]
		queue = queue[1:]
		for _, p := range ga.g.byLHS[A] {
			for _, sym := range p.RHS {
				if !sym.Terminal && !ga.reachable[sym.Name] {
					ga.reachable[sym.Name] = true
					queue = append(queue, sym.Name)
				}
			}
		}
	}
}

// Nullable is true if non-terminal A derives the empty string.
func (ga *Analysis) Nullable(A string) bool {
	return ga.nullable[A]
}

// First returns FIRST(A) in lexical order. For a terminal a, FIRST(a) = {a}.
func (ga *Analysis) First(A string) []string {
	if ga.g.IsTerminal(A) {
		return []string{A}
	}
	if F, ok := ga.first[A]; ok {
		return setStrings(F)
	}
	return nil
}

// FirstOfSequence returns FIRST of a sequence of symbols and a flag telling
// whether the whole sequence is nullable.
func (ga *Analysis) FirstOfSequence(syms []Symbol) ([]string, bool) {
	F := treeset.NewWithStringComparator()
	nullable := ga.addFirstOf(F, syms)
	return setStrings(F), nullable
}

// Follow returns FOLLOW(A) in lexical order.
func (ga *Analysis) Follow(A string) []string {
	if F, ok := ga.follow[A]; ok {
		return setStrings(F)
	}
	return nil
}

// Generating is true if non-terminal A derives at least one terminal string.
func (ga *Analysis) Generating(A string) bool {
	return ga.generating[A]
}

// Reachable is true if non-terminal A appears in some sentential form derived
// from the start symbol.
func (ga *Analysis) Reachable(A string) bool {
	return ga.reachable[A]
}

// Useless returns all non-terminals which are either not generating or not
// reachable, in order of first appearance.
func (ga *Analysis) Useless() []string {
	var useless []string
	for _, A := range ga.g.nonterminals {
		if !ga.useful(A) {
			useless = append(useless, A)
		}
	}
	return useless
}

func (ga *Analysis) useful(A string) bool {
	return ga.generating[A] && ga.reachable[A]
}

// usefulProductions yields every production whose symbols are all useful.
func (ga *Analysis) usefulProductions(f func(p *Production)) {
	for _, p := range ga.g.productions {
		if !ga.useful(p.LHS.Name) {
			continue
		}
		ok := true
		for _, sym := range p.RHS {
			if !sym.Terminal && !ga.generating[sym.Name] {
				ok = false
				break
			}
		}
		if ok {
			f(p)
		}
	}
}

// Recursive returns the useful non-terminals A with A ⇒+ …A…, in order of first
// appearance.
func (ga *Analysis) Recursive() []string {
	var rec []string
	for _, A := range ga.g.nonterminals {
		if ga.useful(A) && ga.reaches(A, A) {
			rec = append(rec, A)
		}
	}
	return rec
}

// HasRecursion is true if some useful non-terminal is recursive.
func (ga *Analysis) HasRecursion() bool {
	return len(ga.Recursive()) > 0
}

// Infinite is true if the language of the grammar is infinite. This is the case
// if and only if there is a cycle of useful non-terminals which may be pumped,
// i.e. some production on the cycle has a sibling symbol deriving a non-empty
// string.
func (ga *Analysis) Infinite() bool {
	infinite := false
	ga.usefulProductions(func(p *Production) {
		if infinite {
			return
		}
		for i, sym := range p.RHS {
			if sym.Terminal || !ga.reaches(sym.Name, p.LHS.Name) {
				continue
			}
			for j, sibling := range p.RHS {
				if j != i && (sibling.Terminal || ga.nonempty[sibling.Name]) {
					infinite = true
					return
				}
			}
		}
	})
	return infinite
}

// reaches is true if `to` occurs in a sentential form derived in one or more
// steps from `from`, using useful productions only.
func (ga *Analysis) reaches(from, to string) bool {
	succ := make(map[string][]string)
	ga.usefulProductions(func(p *Production) {
		for _, sym := range p.RHS {
			if !sym.Terminal {
				succ[p.LHS.Name] = append(succ[p.LHS.Name], sym.Name)
			}
		}
	})
	seen := make(map[string]bool)
	stack := append([]string(nil), succ[from]...)
	for len(stack) > 0 {
		A := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if A == to {
			return true
		}
		if seen[A] {
			continue
		}
		seen[A] = true
		stack = append(stack, succ[A]...)
	}
	return false
}

func setStrings(S *treeset.Set) []string {
	vals := S.Values()
	r := make([]string, len(vals))
	for i, v := range vals {
		r[i] = v.(string)
	}
	return r
}
