package lang

import (
	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/lrpda/lr"
	"github.com/npillmayer/lrpda/lr/pda"
)

var terminals map[lrpda.TokType]string

func init() {
	terminals = map[lrpda.TokType]string{
		EOF:        lr.EOFName,
		Identifier: "ID",
		Number:     "NUMBER",
		String:     "STRING",
		Indent:     "INDENT",
		Dedent:     "DEDENT",
	}
	for name, t := range keywords {
		terminals[t] = name
	}
	for lit, t := range literals {
		terminals[t] = lit
	}
}

// Classifier maps tokens of the language to terminals of its grammars.
// Keywords and operators are named by their spelling. Newlines and comments are
// layout.
type Classifier struct{}

var _ pda.Classifier = Classifier{}

// Classify is part of interface pda.Classifier. Tokens of unknown kind (e.g.,
// illegal characters) fall back to their lexeme, or to their kind name if the
// lexeme is empty or would be mistaken for end of input.
func (Classifier) Classify(tok lrpda.Token) (string, bool) {
	if name, ok := terminals[tok.TokType()]; ok {
		return name, true
	}
	if tok.Lexeme() != "" && tok.Lexeme() != lr.EOFName {
		return tok.Lexeme(), false
	}
	return KindString(tok.TokType()), false
}

// IsLayout is part of interface pda.Classifier.
func (Classifier) IsLayout(tok lrpda.Token) bool {
	return tok.TokType() == Newline || tok.TokType() == Comment
}
