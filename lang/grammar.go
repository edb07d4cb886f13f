package lang

import (
	"fmt"

	"github.com/npillmayer/lrpda/lr"
)

func mustGrammar(g *lr.Grammar, err error) *lr.Grammar {
	if err != nil {
		panic(fmt.Sprintf("lang: invalid built-in grammar: %v", err))
	}
	return g
}

// Grammar returns the grammar of the language:
//
//     program     →  stmt_list
//     stmt_list   →  stmt stmt_list  |  stmt
//     stmt        →  assign | print_stmt | if_stmt | while_stmt | for_stmt
//     assign      →  ID = expr
//     print_stmt  →  print ( expr )
//     if_stmt     →  if expr : block else_part
//     else_part   →  elif expr : block else_part  |  else : block  |  ε
//     while_stmt  →  while expr : block
//     for_stmt    →  for ID in expr : block
//     block       →  INDENT stmt_list DEDENT
//     expr        →  comparison
//     comparison  →  arith  |  arith ( == | != | < | > | <= | >= ) arith
//     arith       →  arith + term  |  arith - term  |  term
//     term        →  term * factor  |  term / factor  |  term % factor  |  factor
//     factor      →  NUMBER | STRING | ID | ( expr ) | list | call
//     list        →  [ ]  |  [ args ]
//     args        →  args , expr  |  expr
//     call        →  range ( expr )  |  len ( expr )
//
func Grammar() *lr.Grammar {
	b := lr.NewGrammarBuilder("lang")
	b.LHS("program").N("stmt_list").End()
	b.LHS("stmt_list").N("stmt").N("stmt_list").End()
	b.LHS("stmt_list").N("stmt").End()
	for _, s := range []string{"assign", "print_stmt", "if_stmt", "while_stmt", "for_stmt"} {
		b.LHS("stmt").N(s).End()
	}
	b.LHS("assign").T("ID").T("=").N("expr").End()
	b.LHS("print_stmt").T("print").T("(").N("expr").T(")").End()
	b.LHS("if_stmt").T("if").N("expr").T(":").N("block").N("else_part").End()
	b.LHS("else_part").T("elif").N("expr").T(":").N("block").N("else_part").End()
	b.LHS("else_part").T("else").T(":").N("block").End()
	b.LHS("else_part").Epsilon()
	b.LHS("while_stmt").T("while").N("expr").T(":").N("block").End()
	b.LHS("for_stmt").T("for").T("ID").T("in").N("expr").T(":").N("block").End()
	b.LHS("block").T("INDENT").N("stmt_list").T("DEDENT").End()
	b.LHS("expr").N("comparison").End()
	b.LHS("comparison").N("arith").End()
	for _, op := range []string{"==", "!=", "<", ">", "<=", ">="} {
		b.LHS("comparison").N("arith").T(op).N("arith").End()
	}
	b.LHS("arith").N("arith").T("+").N("term").End()
	b.LHS("arith").N("arith").T("-").N("term").End()
	b.LHS("arith").N("term").End()
	for _, op := range []string{"*", "/", "%"} {
		b.LHS("term").N("term").T(op).N("factor").End()
	}
	b.LHS("term").N("factor").End()
	for _, t := range []string{"NUMBER", "STRING", "ID"} {
		b.LHS("factor").T(t).End()
	}
	b.LHS("factor").T("(").N("expr").T(")").End()
	b.LHS("factor").N("list").End()
	b.LHS("factor").N("call").End()
	b.LHS("list").T("[").T("]").End()
	b.LHS("list").T("[").N("args").T("]").End()
	b.LHS("args").N("args").T(",").N("expr").End()
	b.LHS("args").N("expr").End()
	b.LHS("call").T("range").T("(").N("expr").T(")").End()
	b.LHS("call").T("len").T("(").N("expr").T(")").End()
	return mustGrammar(b.Grammar())
}

// DemoGrammar returns a simplified statement grammar, the companion of
// DemoTable:
//
//      0: S' → program
//      1: program → stmt_list
//      2: stmt_list → stmt stmt_list
//      3: stmt_list → stmt
//   4–8: stmt → assign | print_stmt | if_stmt | while_stmt | for_stmt
//      9: assign → ID = expr
//     10: print_stmt → print ( expr )
//     11: if_stmt → if expr : block
//     12: while_stmt → while expr : block
//     13: for_stmt → for ID in expr : block
//     14: block → INDENT stmt_list DEDENT
//     15: expr → expr + term
//     16: expr → term
//     17: term → term * factor
//     18: term → factor
//     19: factor → ( expr )
//     20: factor → NUMBER
//     21: factor → ID
//
func DemoGrammar() *lr.Grammar {
	T, N := lr.T, lr.N
	rules := [][]lr.Symbol{
		{N("S'"), N("program")},
		{N("program"), N("stmt_list")},
		{N("stmt_list"), N("stmt"), N("stmt_list")},
		{N("stmt_list"), N("stmt")},
		{N("stmt"), N("assign")},
		{N("stmt"), N("print_stmt")},
		{N("stmt"), N("if_stmt")},
		{N("stmt"), N("while_stmt")},
		{N("stmt"), N("for_stmt")},
		{N("assign"), T("ID"), T("="), N("expr")},
		{N("print_stmt"), T("print"), T("("), N("expr"), T(")")},
		{N("if_stmt"), T("if"), N("expr"), T(":"), N("block")},
		{N("while_stmt"), T("while"), N("expr"), T(":"), N("block")},
		{N("for_stmt"), T("for"), T("ID"), T("in"), N("expr"), T(":"), N("block")},
		{N("block"), T("INDENT"), N("stmt_list"), T("DEDENT")},
		{N("expr"), N("expr"), T("+"), N("term")},
		{N("expr"), N("term")},
		{N("term"), N("term"), T("*"), N("factor")},
		{N("term"), N("factor")},
		{N("factor"), T("("), N("expr"), T(")")},
		{N("factor"), T("NUMBER")},
		{N("factor"), T("ID")},
	}
	prods := make([]lr.Production, len(rules))
	for i, r := range rules {
		prods[i] = lr.Production{ID: i, LHS: r[0], RHS: r[1:]}
	}
	return mustGrammar(lr.NewGrammar("demo", prods))
}

// AssignGrammar returns a grammar for single assignments, the companion of
// AssignTable:
//
//     0: S' → program
//     1: program → assign
//     2: assign → ID = expr
//     3: expr → ID
//     4: expr → NUMBER
//
func AssignGrammar() *lr.Grammar {
	b := lr.NewGrammarBuilder("assign")
	b.LHS("program").N("assign").End()
	b.LHS("assign").T("ID").T("=").N("expr").End()
	b.LHS("expr").T("ID").End()
	b.LHS("expr").T("NUMBER").End()
	return mustGrammar(b.Grammar())
}
