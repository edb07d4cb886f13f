package lrpda

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Apart from EOF we do not define any
// constants here, as it is up to applications to define them.
type TokType int

// EOF is the token type of an end-of-input token. It has the same value as
// text/scanner.EOF.
const EOF TokType = -1

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a number:
//
//    TokType = Number      // identifier for this kind of tokens (application specific)
//    Lexeme  = "3.1416"    // lexeme how it appeared in the input stream
//    Value   = 3.1416      // may be a float64 value, or nil
//    Span    = 67…73       // occured from byte position 67 in the input stream
//    Pos     = 4:12        // line 4, column 12
//
// Parsers of this module never look at Value(); it is carried for diagnostics and
// for clients which post-process token streams.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
	Pos() Position
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span denotes
// a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Positions --------------------------------------------------------

// Position is a line/column location within a source, used for diagnostics.
// Lines and columns start at 1; the zero value means "unknown".
type Position struct {
	Line   int
	Column int
}

// IsKnown is false for the zero position.
func (p Position) IsKnown() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsKnown() {
		return "?:?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
