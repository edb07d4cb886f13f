package pda

import (
	"fmt"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr"
)

// Classifier maps tokens to terminal names of a grammar.
//
// Classify has to be deterministic and free of side effects. It returns false
// as its second result if the token's kind is unknown to the classifier; the
// terminal returned in this case is a fallback (usually the token's lexeme), and
// the parser flags the corresponding trace entry.
//
// IsLayout reports tokens which carry no syntactic meaning (e.g., newlines in a
// language with explicit INDENT/DEDENT tokens). The parser drops them.
type Classifier interface {
	Classify(tok lrpda.Token) (terminal string, known bool)
	IsLayout(tok lrpda.Token) bool
}

// LexemeClassifier uses the lexeme of a token as its terminal name. It is the
// default classifier for parsers and suitable for grammars where terminals are
// spelled like the input, e.g. "(", "+", "x".
type LexemeClassifier struct{}

// Classify is part of interface Classifier.
func (LexemeClassifier) Classify(tok lrpda.Token) (string, bool) {
	return tok.Lexeme(), true
}

// IsLayout is part of interface Classifier.
func (LexemeClassifier) IsLayout(tok lrpda.Token) bool {
	return false
}

// TypeClassifier classifies tokens by their token type.
type TypeClassifier struct {
	terminals map[lrpda.TokType]string
	layout    map[lrpda.TokType]bool
}

// NewTypeClassifier creates a classifier from a map of token types to terminal
// names. Tokens of types listed in layout will be dropped by the parser.
func NewTypeClassifier(terminals map[lrpda.TokType]string, layout ...lrpda.TokType) *TypeClassifier {
	tc := &TypeClassifier{
		terminals: make(map[lrpda.TokType]string, len(terminals)),
		layout:    make(map[lrpda.TokType]bool, len(layout)),
	}
	for t, name := range terminals {
		tc.terminals[t] = name
	}
	for _, t := range layout {
		tc.layout[t] = true
	}
	return tc
}

// Classify is part of interface Classifier. Unknown token types fall back to the
// lexeme, or to the numeric token type if the lexeme is empty or spells the
// end-of-input terminal.
func (tc *TypeClassifier) Classify(tok lrpda.Token) (string, bool) {
	if name, ok := tc.terminals[tok.TokType()]; ok {
		return name, true
	}
	if tok.Lexeme() != "" && tok.Lexeme() != lr.EOFName {
		return tok.Lexeme(), false
	}
	return fmt.Sprintf("#%d", tok.TokType()), false
}

// IsLayout is part of interface Classifier.
func (tc *TypeClassifier) IsLayout(tok lrpda.Token) bool {
	return tc.layout[tok.TokType()]
}
