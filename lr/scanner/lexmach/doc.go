/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of package slr.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The ready-made scanner for the while-language is created with

	LM, err := lexmach.NewWhileLanguage()
	if err != nil {
		// do error handling
	}

Lexmachine may as well be initialized by providing literals, keywords and
regular expressions. Package lexmach is very opinionated on how to do the setup
of lexmachine: literals and keywords are tokens of their own type, i.e. a
literal "(" results in tokens of type "(".

	init := func(lexer *lexmachine.Lexer) {
		// rules which take precedence over literals and keywords
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   slr1.Token
	}
	LM, err := NewLMAdapter(init, literals, keywords, nil)

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

On the parser side tokens are read until the end-of-input token '#'.

	for … { // feed token into parser
		token := scan.NextToken()
		if !slr1.IsEOF(token) {
			…
		}
	}

Please refer to package slr on how to plug in a scanner.Tokenizer.
*/
package lexmach
