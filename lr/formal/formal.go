package formal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/lrpda/lr"
	"github.com/pterm/pterm"
)

// LanguageType is a class of the Chomsky hierarchy.
type LanguageType int

// Chomsky hierarchy, from the most general class to the most restricted one.
const (
	Type0 LanguageType = iota // recursively enumerable
	Type1                     // context-sensitive
	Type2                     // context-free
	Type3                     // regular
)

func (t LanguageType) String() string {
	switch t {
	case Type0:
		return "recursively enumerable"
	case Type1:
		return "context-sensitive"
	case Type2:
		return "context-free"
	case Type3:
		return "regular"
	}
	return "<unknown language type>"
}

// Classify returns the most restricted class of the Chomsky hierarchy g belongs
// to. Productions of an lr.Grammar always have a single non-terminal on their
// left hand side, thus the result is either Type2 or Type3. A grammar is
// classified as regular if it is right-linear, i.e. every right hand side is a
// (possibly empty) string of terminals followed by at most one non-terminal.
func Classify(g *lr.Grammar) LanguageType {
	for _, p := range g.Productions() {
		if !rightLinear(p.RHS) {
			tracer().Debugf("production %v is not right-linear", &p)
			return Type2
		}
	}
	return Type3
}

func rightLinear(rhs []lr.Symbol) bool {
	for i, sym := range rhs {
		if !sym.Terminal && i != len(rhs)-1 {
			return false
		}
	}
	return true
}

// Closure operations, in reporting order.
var closureOps = []string{"union", "concatenation", "kleene star", "intersection",
	"complement", "reversal"}

// Closure tells for each language operation whether the class t is closed
// under it.
func Closure(t LanguageType) map[string]bool {
	props := make(map[string]bool, len(closureOps))
	for _, op := range closureOps {
		props[op] = true
	}
	switch t {
	case Type2:
		props["intersection"] = false
		props["complement"] = false
	case Type1:
		// closed under complement (Immerman–Szelepcsényi)
	case Type0:
		props["complement"] = false
	}
	return props
}

// Decision is the decidability of a problem for a class of languages.
type Decision struct {
	Decidable bool
	Reason    string
}

// Decision problems, in reporting order.
var problems = []string{"membership", "emptiness", "finiteness", "equivalence", "ambiguity"}

// Decidability tells for each decision problem whether it is decidable for
// languages of class t.
func Decidability(t LanguageType) map[string]Decision {
	switch t {
	case Type3:
		return map[string]Decision{
			"membership":  {true, "decidable by running a DFA"},
			"emptiness":   {true, "decidable by reachability of a final state"},
			"finiteness":  {true, "decidable by searching for cycles in a DFA"},
			"equivalence": {true, "decidable by comparing minimal DFAs"},
			"ambiguity":   {true, "decidable for regular grammars"},
		}
	case Type2:
		return map[string]Decision{
			"membership":  {true, "decidable by parsing (CYK, Earley, LR for LR grammars)"},
			"emptiness":   {true, "decidable by computing generating non-terminals"},
			"finiteness":  {true, "decidable by searching for pumpable cycles of useful non-terminals"},
			"equivalence": {false, "undecidable for context-free grammars in general"},
			"ambiguity":   {false, "undecidable for context-free grammars in general"},
		}
	case Type1:
		return map[string]Decision{
			"membership":  {true, "decidable by a linear bounded automaton"},
			"emptiness":   {false, "undecidable for context-sensitive grammars"},
			"finiteness":  {false, "undecidable for context-sensitive grammars"},
			"equivalence": {false, "undecidable for context-sensitive grammars"},
			"ambiguity":   {false, "undecidable for context-sensitive grammars"},
		}
	}
	d := make(map[string]Decision, len(problems))
	for _, p := range problems {
		d[p] = Decision{false, "undecidable (Rice's theorem)"}
	}
	return d
}

// Emptiness tells whether the language of the analysed grammar is empty, which
// is the case if the start symbol derives no terminal string.
func Emptiness(ga *lr.Analysis) (bool, string) {
	S := ga.Grammar().StartSymbol().Name
	if ga.Generating(S) {
		return false, fmt.Sprintf("the language is not empty: start symbol %s derives terminal strings", S)
	}
	return true, fmt.Sprintf("the language is empty: start symbol %s derives no terminal string", S)
}

// Finiteness tells whether the language of the analysed grammar is finite.
// Recursion alone does not make a language infinite: the recursive
// non-terminals have to be useful and the recursion has to add input.
func Finiteness(ga *lr.Analysis) (bool, string) {
	if ga.Infinite() {
		return false, fmt.Sprintf("the language is infinite: recursive non-terminals %s can be pumped",
			strings.Join(ga.Recursive(), ", "))
	}
	if ga.HasRecursion() {
		return true, "the language is finite: recursion does not produce new strings"
	}
	return true, "the language is finite: the grammar has no useful recursion"
}

// Report writes a report of the formal properties of the analysed grammar to w.
func Report(w io.Writer, ga *lr.Analysis) error {
	g := ga.Grammar()
	t := Classify(g)
	var b strings.Builder
	section := func(title string) {
		b.WriteString("\n" + title + "\n" + strings.Repeat("-", len(title)) + "\n")
	}
	fmt.Fprintf(&b, "Formal properties of grammar %s\n", g.Name)
	section("Grammar")
	fmt.Fprintf(&b, "N = {%s}\n", strings.Join(g.Nonterminals(), ", "))
	fmt.Fprintf(&b, "Σ = {%s}\n", strings.Join(g.Terminals(), ", "))
	fmt.Fprintf(&b, "S = %s\n", g.StartSymbol().Name)
	b.WriteString(lr.ProductionsString(g))
	section("Chomsky hierarchy")
	fmt.Fprintf(&b, "type %d: %s\n", int(t), t)
	section("Closure properties")
	closure := Closure(t)
	data := pterm.TableData{{"operation", "closed"}}
	for _, op := range closureOps {
		data = append(data, []string{op, yesNo(closure[op])})
	}
	if err := writeTable(&b, data); err != nil {
		return err
	}
	section("Decidability")
	decisions := Decidability(t)
	data = pterm.TableData{{"problem", "decidable", "reason"}}
	for _, p := range problems {
		d := decisions[p]
		data = append(data, []string{p, yesNo(d.Decidable), d.Reason})
	}
	if err := writeTable(&b, data); err != nil {
		return err
	}
	section("Emptiness")
	empty, why := Emptiness(ga)
	b.WriteString(why + "\n")
	section("Finiteness")
	finite, why := Finiteness(ga)
	b.WriteString(why + "\n")
	if useless := ga.Useless(); len(useless) > 0 {
		fmt.Fprintf(&b, "useless non-terminals: %s\n", strings.Join(useless, ", "))
	}
	section("Summary")
	data = pterm.TableData{
		{"language type", t.String()},
		{"non-terminals", strconv.Itoa(len(g.Nonterminals()))},
		{"terminals", strconv.Itoa(len(g.Terminals()))},
		{"productions", strconv.Itoa(g.Len())},
		{"start symbol", g.StartSymbol().Name},
		{"empty", yesNo(empty)},
		{"finite", yesNo(finite)},
	}
	if err := writeTable(&b, data); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return err
	}
	b.WriteString(pterm.RemoveColorFromString(out))
	b.WriteString("\n")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
