package pda

import (
	"fmt"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr"
	"github.com/npillmayer/schuko/gconf"
)

// Parser is a table-driven shift-reduce automaton. Create one with NewParser.
//
// A parser owns its stack and trace and must not be used by more than one
// goroutine at a time. Grammar and tables are read-only and may be shared by any
// number of parsers.
type Parser struct {
	g          *lr.Grammar
	tables     lr.Tables
	classifier Classifier
	limit      int // max. consecutive reductions; 0 = derive from grammar
	weight     int // sum of |rhs|+1 over all productions
	traceCap   int
	stack      []StackEntry
	trace      *Trace
	err        error
}

// Option configures a parser.
type Option func(p *Parser)

// WithClassifier sets the classifier mapping tokens to terminals. The default is
// LexemeClassifier.
func WithClassifier(c Classifier) Option {
	return func(p *Parser) {
		p.classifier = c
	}
}

// WithReductionLimit bounds the number of consecutive reductions without a
// shift. Exceeding it fails the parse with NoProgress. The default limit is
// Σ(|rhs|+1) over all productions × (stack depth at the last shift + 1), which
// leaves room for epsilon-reductions pushing symbols without consuming input.
//
// Independent of the limit, a reduction in a stack configuration already seen
// since the last shift is a cycle and fails with NoProgress.
func WithReductionLimit(n int) Option {
	return func(p *Parser) {
		p.limit = n
	}
}

// WithTraceCapacity pre-allocates room for n trace entries.
func WithTraceCapacity(n int) Option {
	return func(p *Parser) {
		p.traceCap = n
	}
}

// NewParser creates a parser for grammar g, driven by tables t.
func NewParser(g *lr.Grammar, t lr.Tables, opts ...Option) *Parser {
	p := &Parser{
		g:          g,
		tables:     t,
		classifier: LexemeClassifier{},
		traceCap:   64,
		stack:      make([]StackEntry, 0, 64),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, prod := range g.Productions() {
		p.weight += prod.Len() + 1
	}
	return p
}

// Trace returns the trace of the last parse.
func (p *Parser) Trace() *Trace {
	return p.trace
}

// Err returns the error of the last parse, if any.
func (p *Parser) Err() error {
	return p.err
}

// lookahead is a classified input token.
type lookahead struct {
	tok      lrpda.Token
	terminal string
	fallback bool
}

// classify drops layout tokens, cuts the input at the first end-of-input token
// and appends a synthetic one if there is none. A fallback terminal never ends
// the input.
func (p *Parser) classify(tokens []lrpda.Token) []lookahead {
	input := make([]lookahead, 0, len(tokens)+1)
	for _, tok := range tokens {
		if tok == nil {
			continue
		}
		if tok.TokType() == lrpda.EOF {
			input = append(input, lookahead{tok: tok, terminal: lr.EOFName})
			return input
		}
		if p.classifier.IsLayout(tok) {
			continue
		}
		terminal, known := p.classifier.Classify(tok)
		if !known {
			tracer().Errorf("%s: cannot classify token %q, using %q", tok.Pos(), tok.Lexeme(), terminal)
		}
		input = append(input, lookahead{tok: tok, terminal: terminal, fallback: !known})
		if known && terminal == lr.EOFName {
			return input
		}
	}
	var end eofToken
	if len(input) > 0 {
		last := input[len(input)-1].tok
		end.span = lrpda.Span{last.Span().To(), last.Span().To()}
		end.pos = last.Pos()
	}
	return append(input, lookahead{tok: end, terminal: lr.EOFName})
}

// Parse runs the automaton over a finite token sequence. It returns true if the
// input has been accepted. A rejected input always returns a *ParseError.
//
// The token slice need not contain an end-of-input token.
func (p *Parser) Parse(tokens []lrpda.Token) (bool, error) {
	input := p.classify(tokens)
	p.stack = append(p.stack[:0], StackEntry{State: 0})
	p.trace = newTrace(p.traceCap)
	p.err = nil
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	cursor, reductions, shiftDepth := 0, 0, 0
	var seen map[string]bool // stack configurations reduced in since the last shift
	for step := 0; ; step++ {
		la := input[cursor]
		state := p.stack[len(p.stack)-1].State
		action, ok := p.tables.Action(state, la.terminal)
		entry := TraceEntry{
			Step:      step,
			State:     state,
			Lookahead: la.terminal,
			Action:    action,
			Stack:     p.snapshot(),
			Pos:       la.tok.Pos(),
			Fallback:  la.fallback,
		}
		var prod *lr.Production
		if ok && action.Kind == lr.Reduce {
			if prod, _ = p.g.Production(action.Target); prod != nil {
				entry.Note = prod.String()
			}
		}
		p.trace.append(entry)
		tracer().Debugf("action(%d, %s) = %s", state, la.terminal, action)
		if !ok || action.Kind == lr.ErrorAction {
			return false, p.fail(ActionMiss, state, la.terminal, step, la, "")
		}
		switch action.Kind {
		case lr.Shift:
			if cursor+1 >= len(input) {
				return false, p.fail(NoProgress, state, la.terminal, step, la, "shift past end of input")
			}
			p.stack = append(p.stack, StackEntry{Symbol: la.terminal, State: action.Target, Span: la.tok.Span()})
			cursor++
			reductions, shiftDepth, seen = 0, p.depth(), nil
		case lr.Reduce:
			reductions++
			if reductions > p.reductionLimit(shiftDepth) {
				return false, p.fail(NoProgress, state, la.terminal, step, la,
					fmt.Sprintf("%d reductions without consuming input", reductions-1))
			}
			if seen == nil {
				seen = make(map[string]bool)
			}
			cfg := p.configuration()
			if seen[cfg] {
				return false, p.fail(NoProgress, state, la.terminal, step, la,
					fmt.Sprintf("reduce cycle, stack [%s] repeats", cfg))
			}
			seen[cfg] = true
			if prod == nil {
				return false, p.fail(BadProduction, state, "", step, la, action.String())
			}
			k := prod.Len()
			if p.depth() < k {
				return false, p.fail(StackUnderflow, state, prod.LHS.Name, step, la,
					fmt.Sprintf("cannot pop %d symbols for %v", k, prod))
			}
			span := p.handleSpan(k, la.tok)
			p.stack = p.stack[:len(p.stack)-k]
			exposed := p.stack[len(p.stack)-1].State
			target, ok := p.tables.Goto(exposed, prod.LHS.Name)
			if !ok {
				return false, p.fail(GotoMiss, exposed, prod.LHS.Name, step, la, "")
			}
			tracer().Infof("reduce %v", prod)
			p.stack = append(p.stack, StackEntry{Symbol: prod.LHS.Name, State: target, Span: span})
		case lr.Accept:
			tracer().Infof("input accepted after %d steps", step+1)
			return true, nil
		}
	}
}

func (p *Parser) reductionLimit(depth int) int {
	if p.limit > 0 {
		return p.limit
	}
	return p.weight * (depth + 1)
}

// handleSpan computes the input span covered by the top k stack symbols. An
// empty handle spans the null range just before the lookahead.
func (p *Parser) handleSpan(k int, lookahead lrpda.Token) lrpda.Span {
	if k == 0 {
		pos := lookahead.Span().From()
		return lrpda.Span{pos, pos}
	}
	handle := p.stack[len(p.stack)-k:]
	span := handle[0].Span
	for _, e := range handle[1:] {
		span = span.Extend(e.Span)
	}
	return span
}

func (p *Parser) fail(kind ErrorKind, state int, symbol string, step int, la lookahead, detail string) error {
	err := &ParseError{
		Kind:   kind,
		State:  state,
		Symbol: symbol,
		Depth:  p.depth(),
		Step:   step,
		Pos:    la.tok.Pos(),
		Lexeme: la.tok.Lexeme(),
		Detail: detail,
	}
	p.err = err
	tracer().Errorf("%v", err)
	if err.Fatal() && panicOnDefect() {
		panic(`Parser found a table defect.

Configuration flag panic-on-table-defect is set to true. It is aimed at helping
to debug parser tables and do a post-mortem of a failing parse. However, if this
is a production environment and you did not expect this to panic, please unset
panic-on-table-defect to its default (false).

` + err.Error() + "\n" + p.trace.String())
	}
	return err
}

func panicOnDefect() bool {
	return gconf.GetBool("panic-on-table-defect")
}

// eofToken is the synthetic end-of-input token appended to input without one.
type eofToken struct {
	span lrpda.Span
	pos  lrpda.Position
}

func (t eofToken) TokType() lrpda.TokType { return lrpda.EOF }
func (t eofToken) Lexeme() string         { return "" }
func (t eofToken) Value() interface{}     { return nil }
func (t eofToken) Span() lrpda.Span       { return t.span }
func (t eofToken) Pos() lrpda.Position    { return t.pos }
