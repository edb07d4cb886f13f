package pda

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/lrpda"
	"github.com/pterm/pterm"
)

// StackEntry is a grammar symbol on the parse stack together with the state
// pushed on top of it. The bottom entry has no symbol and holds the start
// state 0.
type StackEntry struct {
	Symbol string
	State  int
	Span   lrpda.Span // input span covered by Symbol
}

// Stack returns a copy of the current parse stack, bottom first.
func (p *Parser) Stack() []StackEntry {
	return append([]StackEntry(nil), p.stack...)
}

// StackHeight returns the number of stack elements, counting states and symbols
// separately. A stack holding k grammar symbols has height 2k+1.
func (p *Parser) StackHeight() int {
	if len(p.stack) == 0 {
		return 0
	}
	return 2*len(p.stack) - 1
}

// depth is the number of grammar symbols on the stack.
func (p *Parser) depth() int {
	if len(p.stack) == 0 {
		return 0
	}
	return len(p.stack) - 1
}

// configuration identifies the stack by its sequence of states.
func (p *Parser) configuration() string {
	var b strings.Builder
	for i, e := range p.stack {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(e.State))
	}
	return b.String()
}

// snapshot returns the stack as alternating states and symbols.
func (p *Parser) snapshot() []string {
	s := make([]string, 0, p.StackHeight())
	for i, e := range p.stack {
		if i > 0 {
			s = append(s, e.Symbol)
		}
		s = append(s, strconv.Itoa(e.State))
	}
	return s
}

// RenderStack prints the parse stack to w, top of stack first.
func (p *Parser) RenderStack(w io.Writer) error {
	data := pterm.TableData{{"#", "symbol", "state", "span"}}
	for i := len(p.stack) - 1; i >= 0; i-- {
		e := p.stack[i]
		sym, span := e.Symbol, e.Span.String()
		if i == 0 {
			sym, span = "⊥", ""
		}
		data = append(data, []string{strconv.Itoa(i), sym, strconv.Itoa(e.State), span})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
