package lang

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr/scanner"
	"github.com/npillmayer/lrpda/lr/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// Lexer splits source text into tokens of the language. Indentation is
// significant: an increase of indentation at the start of a line produces an
// INDENT token, a decrease produces one DEDENT token per closed block. Lines
// which are blank or hold a comment only do not count. Tabs advance to the next
// multiple of 8 columns.
//
// A Lexer is safe for concurrent use.
type Lexer struct {
	adapter *lexmach.LMAdapter
}

// NewLexer creates a lexer. It returns an error if the lexer's DFA cannot be
// compiled.
func NewLexer() (*Lexer, error) {
	tokenIds := map[string]int{
		"ID": int(Identifier), "NUMBER": int(Number), "STRING": int(String),
		"NEWLINE": int(Newline), "COMMENT": int(Comment), "ILLEGAL": int(Illegal),
	}
	var kw, lits []string
	for name, t := range keywords {
		kw = append(kw, name)
		tokenIds[name] = int(t)
	}
	for lit, t := range literals {
		lits = append(lits, lit)
		tokenIds[lit] = int(t)
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`\r?\n[ \t]*`), lexmach.MakeToken("NEWLINE", tokenIds["NEWLINE"]))
		lexer.Add([]byte(`[ \t]+`), lexmach.Skip)
		lexer.Add([]byte(`#[^\n]*`), lexmach.MakeToken("COMMENT", tokenIds["COMMENT"]))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), lexmach.MakeToken("NUMBER", tokenIds["NUMBER"]))
		lexer.Add([]byte(`\"[^"\n]*\"`), lexmach.MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`'[^'\n]*'`), lexmach.MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`.`), lexmach.MakeToken("ILLEGAL", tokenIds["ILLEGAL"]))
	}
	adapter, err := lexmach.NewLMAdapter(init, lits, kw, tokenIds)
	if err != nil {
		return nil, fmt.Errorf("cannot create lexer: %w", err)
	}
	return &Lexer{adapter: adapter}, nil
}

var defaultLexer struct {
	once  sync.Once
	lexer *Lexer
	err   error
}

// DefaultLexer returns a shared lexer, created on first use.
func DefaultLexer() (*Lexer, error) {
	defaultLexer.once.Do(func() {
		defaultLexer.lexer, defaultLexer.err = NewLexer()
	})
	return defaultLexer.lexer, defaultLexer.err
}

// Tokenize splits src into tokens, ending with an EOF token. Illegal characters
// and inconsistent indentation are reported by the returned error (the first one
// found); tokenizing continues nevertheless and illegal characters result in
// tokens of kind Illegal.
func (lx *Lexer) Tokenize(src string) ([]lrpda.Token, error) {
	sc, err := lx.adapter.Scanner(src)
	if err != nil {
		return nil, err
	}
	ind := &indenter{
		levels:    []int{0},
		pending:   indentWidth(src),
		lineStart: true,
	}
	sc.SetErrorHandler(ind.report)
	for _, tok := range scanner.Drain(sc, 0) {
		ind.push(tok)
	}
	tracer().Debugf("tokenized %d bytes into %d tokens", len(src), len(ind.out))
	return ind.out, ind.err
}

// indenter turns raw tokens into the final token stream, tracking indentation.
type indenter struct {
	levels    []int // stack of indentation levels, starting with 0
	pending   int   // indentation of the current line
	lineStart bool  // no significant token seen on the current line
	out       []lrpda.Token
	err       error
}

func (ind *indenter) report(err error) {
	tracer().Errorf("%v", err)
	if ind.err == nil {
		ind.err = err
	}
}

func (ind *indenter) emit(t lrpda.TokType, lexeme string, span lrpda.Span, pos lrpda.Position) {
	ind.out = append(ind.out, scanner.MakeDefaultToken(t, lexeme, span, pos))
}

func (ind *indenter) push(tok lrpda.Token) {
	null := lrpda.Span{tok.Span().From(), tok.Span().From()}
	switch tok.TokType() {
	case Comment:
		ind.out = append(ind.out, tok)
	case Newline:
		if !ind.lineStart {
			ind.emit(Newline, "\n", lrpda.Span{tok.Span().From(), tok.Span().From() + 1}, tok.Pos())
		}
		ind.pending = indentWidth(strings.TrimLeft(tok.Lexeme(), "\r\n"))
		ind.lineStart = true
	case EOF:
		if !ind.lineStart {
			ind.emit(Newline, "", null, tok.Pos())
		}
		for len(ind.levels) > 1 {
			ind.levels = ind.levels[:len(ind.levels)-1]
			ind.emit(Dedent, "", null, tok.Pos())
		}
		ind.out = append(ind.out, tok)
	default:
		if ind.lineStart {
			ind.indent(null, tok.Pos())
			ind.lineStart = false
		}
		if tok.TokType() == Illegal {
			ind.report(fmt.Errorf("%s: illegal character %q", tok.Pos(), tok.Lexeme()))
		}
		ind.out = append(ind.out, withValue(tok))
	}
}

func (ind *indenter) indent(at lrpda.Span, pos lrpda.Position) {
	top := ind.levels[len(ind.levels)-1]
	if ind.pending > top {
		ind.levels = append(ind.levels, ind.pending)
		ind.emit(Indent, "", at, pos)
		return
	}
	for ind.pending < top {
		ind.levels = ind.levels[:len(ind.levels)-1]
		ind.emit(Dedent, "", at, pos)
		top = ind.levels[len(ind.levels)-1]
	}
	if ind.pending != top {
		ind.report(fmt.Errorf("%s: unindent does not match any outer indentation level", pos))
		ind.levels = append(ind.levels, ind.pending)
	}
}

// indentWidth returns the width of the leading whitespace of s.
func indentWidth(s string) int {
	w := 0
	for _, c := range s {
		switch c {
		case ' ':
			w++
		case '\t':
			w += 8 - w%8
		default:
			return w
		}
	}
	return w
}

// withValue sets the value of number and string tokens.
func withValue(tok lrpda.Token) lrpda.Token {
	dt, ok := tok.(scanner.DefaultToken)
	if !ok {
		return tok
	}
	switch dt.TokType() {
	case Number:
		if f, err := strconv.ParseFloat(dt.Lexeme(), 64); err == nil {
			dt.Val = f
		}
	case String:
		if l := dt.Lexeme(); len(l) >= 2 {
			dt.Val = l[1 : len(l)-1]
		}
	}
	return dt
}
