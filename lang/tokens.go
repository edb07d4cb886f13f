package lang

import (
	"fmt"

	"github.com/npillmayer/lrpda"
)

// Token kinds of the language.
const (
	EOF        = lrpda.EOF
	Identifier = lrpda.TokType(iota)
	Number
	String
	Print // keywords
	If
	Elif
	Else
	While
	For
	In
	Range
	Len
	Assign // operators
	Plus
	Minus
	Star
	Slash
	Percent
	Eq
	NotEq
	Less
	Greater
	LessEq
	GreaterEq
	LParen // delimiters
	RParen
	LBracket
	RBracket
	Colon
	Comma
	Newline // layout
	Indent
	Dedent
	Comment
	Illegal
)

var kindNames = map[lrpda.TokType]string{
	EOF: "EOF", Identifier: "IDENTIFIER", Number: "NUMBER", String: "STRING",
	Print: "PRINT", If: "IF", Elif: "ELIF", Else: "ELSE", While: "WHILE", For: "FOR",
	In: "IN", Range: "RANGE", Len: "LEN",
	Assign: "ASSIGN", Plus: "PLUS", Minus: "MINUS", Star: "MULTIPLY", Slash: "DIVIDE",
	Percent: "MODULO", Eq: "EQUAL", NotEq: "NOT_EQUAL", Less: "LESS", Greater: "GREATER",
	LessEq: "LESS_EQUAL", GreaterEq: "GREATER_EQUAL",
	LParen: "LPAREN", RParen: "RPAREN", LBracket: "LBRACKET", RBracket: "RBRACKET",
	Colon: "COLON", Comma: "COMMA",
	Newline: "NEWLINE", Indent: "INDENT", Dedent: "DEDENT", Comment: "COMMENT", Illegal: "ILLEGAL",
}

// KindString returns the name of a token kind. It may be used as a
// lrpda.TokTypeStringer.
func KindString(t lrpda.TokType) string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokType(%d)", int(t))
}

var _ lrpda.TokTypeStringer = KindString

// keywords and literals, spelled as in the source, which is also their
// terminal name.
var keywords = map[string]lrpda.TokType{
	"print": Print, "if": If, "elif": Elif, "else": Else, "while": While,
	"for": For, "in": In, "range": Range, "len": Len,
}

var literals = map[string]lrpda.TokType{
	"=": Assign, "+": Plus, "-": Minus, "*": Star, "/": Slash, "%": Percent,
	"==": Eq, "!=": NotEq, "<": Less, ">": Greater, "<=": LessEq, ">=": GreaterEq,
	"(": LParen, ")": RParen, "[": LBracket, "]": RBracket, ":": Colon, ",": Comma,
}
