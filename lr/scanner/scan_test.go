package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/lrpda"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestDrain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := Drain(GoTokenizer("drain", strings.NewReader("x = 5\ny = x")), 0)
	if assert.Len(t, tokens, 7) {
		assert.Equal(t, lrpda.EOF, tokens[6].TokType())
		assert.Equal(t, "y", tokens[3].Lexeme())
		assert.Equal(t, lrpda.Position{Line: 2, Column: 1}, tokens[3].Pos())
		assert.Equal(t, lrpda.Span{4, 5}, tokens[2].Span())
	}
	tokens = Drain(GoTokenizer("limit", strings.NewReader("a b c d")), 2)
	assert.Len(t, tokens, 2)
}

func TestUnifyStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrpda.scanner")
	defer teardown()
	//
	tokens := Drain(GoTokenizer("strings", strings.NewReader("'c' `raw`"), UnifyStrings(true)), 0)
	if assert.Len(t, tokens, 3) {
		assert.Equal(t, lrpda.TokType(String), tokens[0].TokType())
		assert.Equal(t, lrpda.TokType(String), tokens[1].TokType())
	}
}
