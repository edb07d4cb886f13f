package lang

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr/scanner"
)

// GoTokenize tokenizes src with the Go-like tokenizer of package scanner and
// converts the tokens to the token kinds of the language.
//
// The Go tokenizer treats newlines as white space and knows nothing about
// indentation, so no INDENT or DEDENT tokens are produced. Programs without
// compound statements parse fine; blocks do not. Comments are Go comments.
// Comparison operators delivered as two adjacent characters are fused into one
// token. Characters which are not part of the language are returned as Illegal
// tokens and reported by the returned error.
func GoTokenize(src string) ([]lrpda.Token, error) {
	var first error
	report := func(err error) {
		tracer().Errorf("%v", err)
		if first == nil {
			first = err
		}
	}
	sc := scanner.GoTokenizer("input", strings.NewReader(src),
		scanner.SkipComments(true), scanner.UnifyStrings(true))
	sc.SetErrorHandler(report)
	raw := scanner.Drain(sc, 0)
	tokens := make([]lrpda.Token, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		if i+1 < len(raw) && adjacent(tok, raw[i+1]) {
			if t, ok := literals[tok.Lexeme()+raw[i+1].Lexeme()]; ok {
				span := lrpda.Span{tok.Span().From(), raw[i+1].Span().To()}
				tokens = append(tokens, scanner.MakeDefaultToken(t, tok.Lexeme()+raw[i+1].Lexeme(), span, tok.Pos()))
				i++
				continue
			}
		}
		t := goKind(tok)
		if t == Illegal {
			report(fmt.Errorf("%s: illegal character %q", tok.Pos(), tok.Lexeme()))
		}
		tokens = append(tokens, withValue(scanner.MakeDefaultToken(t, tok.Lexeme(), tok.Span(), tok.Pos())))
	}
	tracer().Debugf("Go tokenizer: %d bytes into %d tokens", len(src), len(tokens))
	return tokens, first
}

func adjacent(t1, t2 lrpda.Token) bool {
	return len(t1.Lexeme()) == 1 && len(t2.Lexeme()) == 1 && t1.Span().To() == t2.Span().From()
}

// goKind maps a token kind of the Go tokenizer to a token kind of the language.
func goKind(tok lrpda.Token) lrpda.TokType {
	switch tok.TokType() {
	case scanner.EOF:
		return EOF
	case scanner.Ident:
		if t, ok := keywords[tok.Lexeme()]; ok {
			return t
		}
		return Identifier
	case scanner.Int, scanner.Float:
		return Number
	case scanner.String:
		return String
	}
	if t, ok := literals[tok.Lexeme()]; ok {
		return t
	}
	return Illegal
}
