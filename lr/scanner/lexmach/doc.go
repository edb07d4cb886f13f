/*
Package lexmach adapts the lexmachine scanner generator to the scanner.Tokenizer
interface, producing lrpda.Tokens with byte spans and line/column positions.

Clients hand over the spellings of literals and keywords, a map from token
names to token kinds, and a function which adds the remaining patterns:

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("NUMBER", ids["NUMBER"]))
		lexer.Add([]byte(`[ \t\n]+`), lexmach.Skip)
	}
	adapter, err := lexmach.NewLMAdapter(init, literals, keywords, ids)

Keywords and literals are registered before the patterns of init and win over
patterns matching the same text with the same length. The adapter compiles the
DFA once; Scanner creates a cheap tokenizer per input string:

	sc, _ := adapter.Scanner("x = 42")
	tokens := scanner.Drain(sc, 0)

Input no pattern matches is reported to the scanner's error handler and skipped.
Package lang shows a complete setup, including indentation tracking on top of
the token stream.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
