package lang

import (
	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr"
	"github.com/npillmayer/lrpda/lr/pda"
)

// NewParser creates a parser for table t, classifying tokens with a Classifier.
// t may be one of Tables, DemoTable or AssignTable, or any table over the
// terminal vocabulary of the language.
func NewParser(t *lr.Table, opts ...pda.Option) *pda.Parser {
	opts = append([]pda.Option{pda.WithClassifier(Classifier{})}, opts...)
	return pda.NewParser(t.Grammar(), t, opts...)
}

// Parse tokenizes src and parses it with the generated tables of the language.
// It returns the parser as well, giving access to the trace and the final
// stack. Input is accepted only if it is free of lexical errors and the
// automaton accepts it. A parse error has precedence over a lexical error, so a
// rejected parse returns a *pda.ParseError if the automaton failed, or the
// lexer's error otherwise.
func Parse(src string) (bool, *pda.Parser, error) {
	t, err := Tables()
	if err != nil {
		return false, nil, err
	}
	return ParseWith(t, src)
}

// ParseWith tokenizes src and parses it using table t. Results are as for Parse.
func ParseWith(t *lr.Table, src string, opts ...pda.Option) (bool, *pda.Parser, error) {
	lx, err := DefaultLexer()
	if err != nil {
		return false, nil, err
	}
	tokens, lexErr := lx.Tokenize(src)
	return parseTokens(t, tokens, lexErr, opts)
}

// ParseGo tokenizes src with GoTokenize and parses it using table t. Results are
// as for Parse.
func ParseGo(t *lr.Table, src string, opts ...pda.Option) (bool, *pda.Parser, error) {
	tokens, lexErr := GoTokenize(src)
	return parseTokens(t, tokens, lexErr, opts)
}

func parseTokens(t *lr.Table, tokens []lrpda.Token, lexErr error, opts []pda.Option) (bool, *pda.Parser, error) {
	if tokens == nil {
		return false, nil, lexErr
	}
	p := NewParser(t, opts...)
	accepted, err := p.Parse(tokens)
	accepted, err = verdict(accepted, err, lexErr)
	return accepted, p, err
}

// verdict combines the outcome of a parse with the outcome of lexing.
func verdict(accepted bool, parseErr, lexErr error) (bool, error) {
	if parseErr != nil {
		return false, parseErr
	}
	if lexErr != nil {
		return false, lexErr
	}
	return accepted, nil
}
