/*
Package scanner defines an interface for scanners delivering tokens to the
parsers of this module.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

The automaton of package lr/pda operates on a finite, materialised token
sequence. Drain reads a tokenizer up to end of input to produce one.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrpda.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrpda.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lrpda.Token
	SetErrorHandler(func(error))
}

// Drain reads tokens from t until end of input. The EOF token is included as
// the last token of the result. Drain stops after limit tokens if limit > 0,
// guarding against tokenizers which never signal end of input.
func Drain(t Tokenizer, limit int) []lrpda.Token {
	var tokens []lrpda.Token
	for {
		token := t.NextToken()
		tokens = append(tokens, token)
		if token.TokType() == lrpda.EOF {
			break
		}
		if limit > 0 && len(tokens) >= limit {
			tracer().Errorf("token limit of %d reached before end of input", limit)
			break
		}
	}
	tracer().Debugf("drained %d tokens", len(tokens))
	return tokens
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lrpda.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   lrpda.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   lrpda.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
		pos:    lrpda.Position{Line: t.Position.Line, Column: t.Position.Column},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   lrpda.TokType
	lexeme string
	Val    interface{}
	span   lrpda.Span
	pos    lrpda.Position
}

var _ lrpda.Token = DefaultToken{}

// MakeDefaultToken creates a token. pos may be the zero position if unknown.
func MakeDefaultToken(typ lrpda.TokType, lexeme string, span lrpda.Span, pos lrpda.Position) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
		pos:    pos,
	}
}

func (t DefaultToken) TokType() lrpda.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() lrpda.Span {
	return t.span
}

func (t DefaultToken) Pos() lrpda.Position {
	return t.pos
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%d %q @%s", t.kind, t.lexeme, t.pos)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}
