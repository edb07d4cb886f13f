package lang

import (
	"testing"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func kinds(tokens []lrpda.Token) []string {
	k := make([]string, len(tokens))
	for i, t := range tokens {
		k[i] = KindString(t.TokType())
	}
	return k
}

func tokenize(t *testing.T, src string) []lrpda.Token {
	lx, err := DefaultLexer()
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := lx.Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected lexer error for %q: %v", src, err)
	}
	return tokens
}

func TestLexerIndentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := tokenize(t, "if x:\n    y = 1\nz = 2")
	assert.Equal(t, []string{
		"IF", "IDENTIFIER", "COLON", "NEWLINE",
		"INDENT", "IDENTIFIER", "ASSIGN", "NUMBER", "NEWLINE",
		"DEDENT", "IDENTIFIER", "ASSIGN", "NUMBER", "NEWLINE", "EOF",
	}, kinds(tokens))
	assert.Equal(t, 2, tokens[5].Pos().Line)
	assert.Equal(t, 3, tokens[10].Pos().Line)
}

func TestLexerClosesBlocksAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := tokenize(t, "while x:\n  if y:\n    z = 1\n")
	assert.Equal(t, []string{
		"WHILE", "IDENTIFIER", "COLON", "NEWLINE",
		"INDENT", "IF", "IDENTIFIER", "COLON", "NEWLINE",
		"INDENT", "IDENTIFIER", "ASSIGN", "NUMBER", "NEWLINE",
		"DEDENT", "DEDENT", "EOF",
	}, kinds(tokens))
}

func TestLexerBlankAndCommentLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := tokenize(t, "x = 1\n\n   # note\ny = 2")
	assert.Equal(t, []string{
		"IDENTIFIER", "ASSIGN", "NUMBER", "NEWLINE",
		"COMMENT",
		"IDENTIFIER", "ASSIGN", "NUMBER", "NEWLINE", "EOF",
	}, kinds(tokens))
	assert.Equal(t, "# note", tokens[4].Lexeme())
}

func TestLexerKeywordsAndOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := tokenize(t, "for i in range(len(xs)): printer <= 2 != 3")
	assert.Equal(t, []string{
		"FOR", "IDENTIFIER", "IN", "RANGE", "LPAREN", "LEN", "LPAREN", "IDENTIFIER",
		"RPAREN", "RPAREN", "COLON", "IDENTIFIER", "LESS_EQUAL", "NUMBER",
		"NOT_EQUAL", "NUMBER", "NEWLINE", "EOF",
	}, kinds(tokens))
	assert.Equal(t, "printer", tokens[11].Lexeme())
}

func TestLexerValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := tokenize(t, "n = 3.5\ns = 'hi'\nd = \"there\"")
	assert.Equal(t, 3.5, tokens[2].Value())
	assert.Equal(t, "hi", tokens[6].Value())
	assert.Equal(t, "there", tokens[10].Value())
	assert.Nil(t, tokens[0].Value())
}

func TestLexerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	lx, err := DefaultLexer()
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := lx.Tokenize("x = 5 ?")
	assert.Error(t, err)
	assert.Equal(t, []string{
		"IDENTIFIER", "ASSIGN", "NUMBER", "ILLEGAL", "NEWLINE", "EOF",
	}, kinds(tokens))
	//
	_, err = lx.Tokenize("if x:\n    y = 1\n  z = 2")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "unindent")
	}
}

func TestIndentWidth(t *testing.T) {
	assert.Equal(t, 0, indentWidth("x"))
	assert.Equal(t, 4, indentWidth("    x"))
	assert.Equal(t, 8, indentWidth("\tx"))
	assert.Equal(t, 8, indentWidth("  \tx"))
	assert.Equal(t, 10, indentWidth("\t  "))
}

func TestClassifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := tokenize(t, "x = len(xs) # count\n")
	c := Classifier{}
	var terms []string
	for _, tok := range tokens {
		if c.IsLayout(tok) {
			continue
		}
		term, ok := c.Classify(tok)
		assert.True(t, ok, "token %q", tok.Lexeme())
		terms = append(terms, term)
	}
	assert.Equal(t, []string{"ID", "=", "len", "(", "ID", ")", "$"}, terms)
	//
	lx, _ := DefaultLexer()
	tokens, _ = lx.Tokenize("$")
	term, ok := c.Classify(tokens[0])
	assert.False(t, ok)
	assert.Equal(t, "ILLEGAL", term)
}
